package styles

import (
	"bytes"
	"strings"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Style names accepted by [Lookup].
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// Style defines the visual appearance of a rendered bracket.
type Style interface {
	// RenderDefs writes SVG <defs> content and any backdrop.
	RenderDefs(buf *bytes.Buffer, width, height float64)
	// RenderTitle writes a section title.
	RenderTitle(buf *bytes.Buffer, t Title)
	// RenderHeader writes the header of one round column.
	RenderHeader(buf *bytes.Buffer, h Header)
	// RenderBox writes the outline of one match box.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderText writes the team lines of one match box.
	RenderText(buf *bytes.Buffer, b Box)
	// RenderConnector writes one connector segment.
	RenderConnector(buf *bytes.Buffer, c Connector)
}

// Title is a section title anchored at its left baseline.
type Title struct {
	Text string
	X, Y float64
}

// Header is a round column header centered on CX.
type Header struct {
	Name   string
	BestOf int
	CX, Y  float64
	W      float64
}

// Box contains all data needed to render one match.
type Box struct {
	ID         string  // Match identifier
	X, Y, W, H float64 // Position and dimensions
	Teams      []Line   // Up to two team lines, top first
	Decided    bool     // Whether a winner is known
	Feeders    []string // IDs of the matches feeding this one
}

// Line is one team row inside a box.
type Line struct {
	Name   string
	Score  string
	Winner bool // highlighted when winner rendering is enabled
	Bye    bool
}

// Connector is one line segment between boxes.
type Connector struct {
	Kind           string // stub, link or entry
	X1, Y1, X2, Y2 float64
}

// Lookup returns the style registered under name. The empty name selects
// [Simple].
func Lookup(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StyleSimple:
		return Simple{}, nil
	case StyleDark:
		return Dark{}, nil
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidStyle, "unknown style %q (want %s or %s)", name, StyleSimple, StyleDark)
	}
}

// Names lists the built-in style names.
func Names() []string { return []string{StyleSimple, StyleDark} }
