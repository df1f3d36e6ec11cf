package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
	"github.com/matzehuels/bracketview/pkg/render/bracket/styles"
)

// Vertical bands reserved above the content.
const (
	DocumentTitleHeight = 48.0
	SectionTitleHeight  = 36.0
)

const matchInteractionCSS = `
    .match { transition: stroke-width 0.2s ease; }
    .match.highlight { stroke-width: 3.5; }
    .team.highlight { font-weight: bold; }`

const matchInteractionJS = `
    function highlight(ids) {
      document.querySelectorAll('.match').forEach(b => b.classList.toggle('highlight', ids.includes(b.id.replace('match-', ''))));
      document.querySelectorAll('.team').forEach(t => t.classList.toggle('highlight', ids.includes(t.dataset.match)));
    }
    function clearHighlight() {
      document.querySelectorAll('.match, .team').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.match').forEach(el => {
      const ids = [el.id.replace('match-', '')].concat((el.dataset.feeders || '').split(' ').filter(Boolean));
      el.addEventListener('mouseenter', () => highlight(ids));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	interaction bool
	winners     bool
}

// WithStyle selects the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithInteraction embeds a hover script highlighting a match and its feeders.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithWinners emphasizes teams flagged as winners.
func WithWinners() SVGOption { return func(r *svgRenderer) { r.winners = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

// RenderSVG draws every section of doc, stacked vertically in order. Each
// section gets a title band followed by its frame.
func RenderSVG(doc layout.Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	width, height := Size(doc)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf, width, height)

	y := 0.0
	if doc.Title != "" {
		r.style.RenderTitle(&buf, styles.Title{Text: doc.Title, X: margin(doc), Y: DocumentTitleHeight * 0.65})
		y += DocumentTitleHeight
	}
	titles := make([]string, len(doc.Sections))
	for i, l := range doc.Sections {
		titles[i] = l.Title
	}
	keys := bracket.SectionKeys(titles)
	for i, l := range doc.Sections {
		fmt.Fprintf(&buf, `  <g class="section" id="section-%s" transform="translate(0,%.2f)">`+"\n",
			styles.EscapeXML(keys[i]), y)
		r.renderSection(&buf, l)
		buf.WriteString("  </g>\n")
		y += SectionTitleHeight + l.FrameHeight
	}

	if r.interaction {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", matchInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", matchInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Size returns the dimensions of the rendered document.
func Size(doc layout.Document) (width, height float64) {
	if doc.Title != "" {
		height += DocumentTitleHeight
	}
	for _, l := range doc.Sections {
		width = max(width, l.FrameWidth)
		height += SectionTitleHeight + l.FrameHeight
	}
	return width, height
}

func margin(doc layout.Document) float64 {
	if len(doc.Sections) > 0 {
		return doc.Sections[0].Margin
	}
	return layout.DefaultMargin
}

func (r *svgRenderer) renderSection(buf *bytes.Buffer, l layout.Layout) {
	r.style.RenderTitle(buf, styles.Title{Text: l.Title, X: l.Margin, Y: SectionTitleHeight * 0.7})
	fmt.Fprintf(buf, `  <g transform="translate(0,%.2f)">`+"\n", SectionTitleHeight)

	for _, c := range l.Columns {
		r.style.RenderHeader(buf, styles.Header{
			Name: c.Name, BestOf: c.BestOf,
			CX: c.Left + c.Width/2, Y: c.HeaderY, W: c.Width,
		})
	}
	for _, c := range l.Connectors {
		r.style.RenderConnector(buf, styles.Connector{
			Kind: string(c.Kind), X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2,
		})
	}
	for _, b := range l.Boxes {
		sb := r.buildBox(l, b)
		r.style.RenderBox(buf, sb)
		r.style.RenderText(buf, sb)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) buildBox(l layout.Layout, b layout.Box) styles.Box {
	sb := styles.Box{
		ID: b.MatchID,
		X:  b.Left, Y: b.Top,
		W: b.Width(), H: b.Height(),
	}
	if !l.Flow() {
		if prev, top, bottom, ok := bracket.Feeders(b.Round, b.Index); ok {
			for _, idx := range []int{top, bottom} {
				if fb, ok := l.BoxAt(prev, idx); ok && fb.MatchID != "" {
					sb.Feeders = append(sb.Feeders, fb.MatchID)
				}
			}
		}
	}
	m := b.Match
	for i := range 2 {
		t := m.Slot(i)
		ln := styles.Line{Name: t.DisplayName(), Bye: t.Bye}
		if t.Score != nil {
			ln.Score = t.ScoreText()
		}
		if r.winners && t.Winner {
			ln.Winner = true
			sb.Decided = true
		}
		sb.Teams = append(sb.Teams, ln)
	}
	return sb
}
