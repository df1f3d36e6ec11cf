package layout

import "github.com/matzehuels/bracketview/pkg/bracket"

// Box is the rectangle occupied by one match.
// Coordinates are in user units with y growing downwards.
type Box struct {
	MatchID  string        `json:"match_id"`
	Round    int           `json:"round"`
	Index    int           `json:"index"`
	Position float64       `json:"position"` // engine position (binary) or flow offset (linear)
	Left     float64       `json:"left"`
	Right    float64       `json:"right"`
	Top      float64       `json:"top"`
	Bottom   float64       `json:"bottom"`
	Match    bracket.Match `json:"match"`
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center point of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center point of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }
