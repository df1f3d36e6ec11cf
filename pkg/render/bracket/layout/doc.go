// Package layout computes bracket geometry.
//
// # Positions
//
// A [Positioner] owns the vertical position of every match of one binary
// section. Round 0 matches sit on a fixed grid:
//
//	Position(0, i) = i * rowHeight
//
// and every later match sits halfway between the two matches feeding it:
//
//	Position(r, i) = (Position(r-1, 2i) + Position(r-1, 2i+1)) / 2
//
// Results are memoized per Positioner, keyed by (round, match). The memo
// lives exactly as long as the Positioner, so two sections (or two
// documents laid out in parallel) never see each other's values. The shape
// is validated when the Positioner is created; a Positioner therefore
// never computes a position for a malformed bracket, and out-of-range keys
// fail with INVALID_INDEX instead of returning garbage.
//
// [Positioner.Fill] is the iterative bottom-up equivalent and is used when
// every position is needed at once.
//
// # Layout
//
// [Build] turns a section into a [Layout]: one [Column] per round, one
// [Box] per match and, for binary sections, the [Connector] segments that
// join siblings to the match they feed:
//
//	┌─────┐
//	│ m0  ├──┐            stub  (every non-final match)
//	└─────┘  │
//	         ├──┌─────┐   link  (top sibling only) + entry
//	┌─────┐  │  │ m0' │
//	│ m1  ├──┘  └─────┘
//	└─────┘
//
// Linear sections are stacked in document order with no connectors.
//
// Coordinates are SVG user units with y growing downwards.
package layout
