package layout

import (
	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Default geometry in user units.
const (
	DefaultBoxWidth     = 220.0
	DefaultBoxHeight    = 80.0
	DefaultColumnGap    = 60.0
	DefaultFlowGap      = 16.0
	DefaultHeaderHeight = 40.0
	DefaultMargin       = 20.0
)

// Layout is the computed geometry of one section.
type Layout struct {
	Title       string       `json:"title"`
	Mode        bracket.Mode `json:"mode"`
	FrameWidth  float64      `json:"width"`
	FrameHeight float64      `json:"height"`
	RowHeight   float64      `json:"row_height"`
	Margin      float64      `json:"margin"`
	Columns     []Column     `json:"columns"`
	Boxes       []Box        `json:"boxes"`
	Connectors  []Connector  `json:"connectors,omitempty"`
}

// Document is a laid-out bracket: the layouts of every section in display
// order. It is the serialized form written by the JSON sink and read back
// for re-rendering.
type Document struct {
	Title    string   `json:"title,omitempty"`
	Style    string   `json:"style,omitempty"`
	Sections []Layout `json:"sections"`
}

// Column describes the header area of one round.
type Column struct {
	Round   int     `json:"round"`
	Name    string  `json:"name"`
	BestOf  int     `json:"best_of,omitempty"`
	Left    float64 `json:"left"`
	Width   float64 `json:"width"`
	HeaderY float64 `json:"header_y"` // vertical center of the header row
}

// Flow reports whether boxes were stacked in document order rather than
// positioned by the engine.
func (l Layout) Flow() bool { return l.Mode == bracket.ModeLinear }

// Box returns the box for matchID.
func (l Layout) Box(matchID string) (Box, bool) {
	for _, b := range l.Boxes {
		if b.MatchID == matchID {
			return b, true
		}
	}
	return Box{}, false
}

// BoxAt returns the box at (round, index).
func (l Layout) BoxAt(round, index int) (Box, bool) {
	for _, b := range l.Boxes {
		if b.Round == round && b.Index == index {
			return b, true
		}
	}
	return Box{}, false
}

// ConnectorsOf returns the connectors of the given kind.
func (l Layout) ConnectorsOf(kind ConnectorKind) []Connector {
	var out []Connector
	for _, c := range l.Connectors {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// Options
// =============================================================================

// Option configures [Build].
type Option func(*options)

type options struct {
	rowHeight    float64
	boxWidth     float64
	boxHeight    float64
	columnGap    float64
	flowGap      float64
	headerHeight float64
	margin       float64
	positioner   *Positioner
}

// WithRowHeight sets the round-0 grid spacing.
func WithRowHeight(h float64) Option { return func(o *options) { o.rowHeight = h } }

// WithBoxSize sets the size of every match box.
func WithBoxSize(w, h float64) Option {
	return func(o *options) { o.boxWidth, o.boxHeight = w, h }
}

// WithColumnGap sets the horizontal gap between rounds. Connector stubs
// and entries each take half of it.
func WithColumnGap(g float64) Option { return func(o *options) { o.columnGap = g } }

// WithFlowGap sets the vertical gap between stacked boxes in linear sections.
func WithFlowGap(g float64) Option { return func(o *options) { o.flowGap = g } }

// WithHeaderHeight sets the height reserved above the boxes for round names.
func WithHeaderHeight(h float64) Option { return func(o *options) { o.headerHeight = h } }

// WithMargin sets the padding around the frame.
func WithMargin(m float64) Option { return func(o *options) { o.margin = m } }

// WithPositioner reuses p, and its memo, for a binary section. p must have
// been created for the same round sizes; Build fails with SHAPE_MISMATCH
// otherwise. Its row height takes precedence over WithRowHeight.
func WithPositioner(p *Positioner) Option { return func(o *options) { o.positioner = p } }

func newOptions(opts []Option) options {
	o := options{
		rowHeight:    DefaultRowHeight,
		boxWidth:     DefaultBoxWidth,
		boxHeight:    DefaultBoxHeight,
		columnGap:    DefaultColumnGap,
		flowGap:      DefaultFlowGap,
		headerHeight: DefaultHeaderHeight,
		margin:       DefaultMargin,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rowHeight <= 0 {
		o.rowHeight = DefaultRowHeight
	}
	if o.boxWidth <= 0 {
		o.boxWidth = DefaultBoxWidth
	}
	if o.boxHeight <= 0 {
		o.boxHeight = DefaultBoxHeight
	}
	o.columnGap = max(0, o.columnGap)
	o.flowGap = max(0, o.flowGap)
	o.headerHeight = max(0, o.headerHeight)
	o.margin = max(0, o.margin)
	return o
}

// =============================================================================
// Build
// =============================================================================

// Build lays out one section. The section is validated first, so a
// malformed binary section fails with SHAPE_MISMATCH before any position
// is computed. A fresh [Positioner] is created for every call unless one
// is supplied with [WithPositioner].
func Build(sec *bracket.Section, opts ...Option) (Layout, error) {
	if err := bracket.ValidateSection(sec); err != nil {
		return Layout{}, err
	}
	o := newOptions(opts)

	l := Layout{
		Title:     sec.Title,
		Mode:      sec.Mode,
		RowHeight: o.rowHeight,
		Margin:    o.margin,
	}
	if l.Mode == "" {
		l.Mode = bracket.ModeBinary
	}

	for r, round := range sec.Rounds {
		l.Columns = append(l.Columns, Column{
			Round:   r,
			Name:    sec.RoundLabel(r),
			BestOf:  round.BestOf,
			Left:    o.columnLeft(r),
			Width:   o.boxWidth,
			HeaderY: o.margin + o.headerHeight/2,
		})
	}

	var err error
	if sec.IsLinear() {
		buildLinear(&l, sec, o)
	} else {
		err = buildBinary(&l, sec, o)
	}
	if err != nil {
		return Layout{}, err
	}

	l.FrameWidth, l.FrameHeight = o.frame(l)
	return l, nil
}

func buildBinary(l *Layout, sec *bracket.Section, o options) error {
	counts := sec.Counts()
	p := o.positioner
	if p == nil {
		var err error
		if p, err = NewPositioner(counts, o.rowHeight); err != nil {
			return err
		}
	} else if !p.Matches(counts) {
		return apperr.New(apperr.ErrCodeShapeMismatch, "positioner built for round sizes %v, section %q has %v", p.counts, sec.Title, counts)
	}
	l.RowHeight = p.RowHeight()

	top := o.margin + o.headerHeight
	for r, round := range sec.Rounds {
		left := o.columnLeft(r)
		for i, m := range round.Matches {
			pos, err := p.Position(r, i)
			if err != nil {
				return err
			}
			l.Boxes = append(l.Boxes, Box{
				MatchID:  m.ID,
				Round:    r,
				Index:    i,
				Position: pos,
				Left:     left,
				Right:    left + o.boxWidth,
				Top:      top + pos,
				Bottom:   top + pos + o.boxHeight,
				Match:    m,
			})
		}
	}

	last := len(sec.Rounds) - 1
	half := o.columnGap / 2
	for _, b := range l.Boxes {
		if b.Round == last {
			continue
		}
		cy := b.CenterY()
		elbow := b.Right + half
		l.Connectors = append(l.Connectors, Connector{
			Kind: ConnectorStub, Round: b.Round, Match: b.Index,
			X1: b.Right, Y1: cy, X2: elbow, Y2: cy,
		})
		if b.Index%2 != 0 {
			continue
		}
		span, err := p.Connector(b.Round, b.Index)
		if err != nil {
			return err
		}
		l.Connectors = append(l.Connectors, Connector{
			Kind: ConnectorLink, Round: b.Round, Match: b.Index,
			X1: elbow, Y1: cy, X2: elbow, Y2: cy + span,
		})
		mid := cy + span/2
		l.Connectors = append(l.Connectors, Connector{
			Kind: ConnectorEntry, Round: b.Round, Match: b.Index,
			X1: elbow, Y1: mid, X2: o.columnLeft(b.Round + 1), Y2: mid,
		})
	}
	return nil
}

func buildLinear(l *Layout, sec *bracket.Section, o options) {
	top := o.margin + o.headerHeight
	step := o.boxHeight + o.flowGap
	for r, round := range sec.Rounds {
		left := o.columnLeft(r)
		for i, m := range round.Matches {
			off := float64(i) * step
			l.Boxes = append(l.Boxes, Box{
				MatchID:  m.ID,
				Round:    r,
				Index:    i,
				Position: off,
				Left:     left,
				Right:    left + o.boxWidth,
				Top:      top + off,
				Bottom:   top + off + o.boxHeight,
				Match:    m,
			})
		}
	}
}

func (o options) columnLeft(r int) float64 {
	return o.margin + float64(r)*(o.boxWidth+o.columnGap)
}

func (o options) frame(l Layout) (w, h float64) {
	w = 2 * o.margin
	if n := len(l.Columns); n > 0 {
		w += float64(n)*o.boxWidth + float64(n-1)*o.columnGap
	}
	h = o.margin + o.headerHeight
	for _, b := range l.Boxes {
		h = max(h, b.Bottom)
	}
	return w, h + o.margin
}
