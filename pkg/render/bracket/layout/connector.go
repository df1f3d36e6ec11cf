package layout

import "math"

// ConnectorKind identifies the segment a connector draws.
type ConnectorKind string

// Connector kinds.
const (
	// ConnectorStub leaves the right edge of a non-final match.
	ConnectorStub ConnectorKind = "stub"
	// ConnectorLink joins two siblings. Only the top sibling owns one.
	ConnectorLink ConnectorKind = "link"
	// ConnectorEntry runs from the middle of a link into the fed match.
	ConnectorEntry ConnectorKind = "entry"
)

// Connector is a straight line segment between matches.
// Round and Match identify the match that owns the segment.
type Connector struct {
	Kind  ConnectorKind `json:"kind"`
	Round int           `json:"round"`
	Match int           `json:"match"`
	X1    float64       `json:"x1"`
	Y1    float64       `json:"y1"`
	X2    float64       `json:"x2"`
	Y2    float64       `json:"y2"`
}

// Length returns the segment length.
func (c Connector) Length() float64 { return math.Hypot(c.X2-c.X1, c.Y2-c.Y1) }

// Vertical reports whether the segment is vertical.
func (c Connector) Vertical() bool { return c.X1 == c.X2 }
