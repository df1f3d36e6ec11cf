// Package bracket defines the tournament bracket model laid out by
// bracketview.
//
// # Model
//
// A [Document] holds one or more [Section] values ("Upper Bracket",
// "Lower Bracket", ...). Each section is an ordered list of [Round] values,
// and each round an ordered list of [Match] values. Match contents (teams,
// scores) are opaque to the layout engine; only the number of matches per
// round matters for geometry.
//
// # Modes
//
// A section is laid out in one of two modes:
//
//   - [ModeBinary]: an elimination tree. Round 0 has N matches and every
//     later round has exactly half as many. Match i of round r is fed by
//     matches 2i and 2i+1 of round r-1 (see [Feeders] and [Parent]).
//   - [ModeLinear]: a plain stacked list, no feeder relation.
//
// # Validation
//
// [ValidateShape] and [Validate] reject malformed brackets with a
// SHAPE_MISMATCH error before any layout work begins. Callers that accept
// user files should run [Normalize] first so that missing IDs and round
// names are filled deterministically.
//
// # Generation
//
// [Generate] builds an empty binary section from a list of team names,
// padding with byes to the next power of two and pairing by a [Seeding]
// strategy.
package bracket
