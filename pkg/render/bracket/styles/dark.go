package styles

import (
	"bytes"
	"fmt"
)

const (
	darkBackground = "#11151c"
	darkBox        = "#1f2937"
	darkBorder     = "#4b5563"
	darkText       = "#e5e7eb"
	darkMuted      = "#6b7280"
	darkAccent     = "#fbbf24"
)

// Dark renders light text on slate boxes over a full-frame dark backdrop.
type Dark struct{}

func (Dark) RenderDefs(buf *bytes.Buffer, width, height float64) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="box-glow" x="-10%" y="-10%" width="120%" height="120%"><feDropShadow dx="0" dy="1" stdDeviation="2" flood-color="#000" flood-opacity="0.6"/></filter>` + "\n")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, `  <rect class="backdrop" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", width, height, darkBackground)
}

func (Dark) RenderTitle(buf *bytes.Buffer, t Title) {
	fmt.Fprintf(buf, `  <text class="section-title" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="20" font-weight="bold" fill="%s">%s</text>`+"\n",
		t.X, t.Y, darkText, EscapeXML(t.Text))
}

func (Dark) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf, `  <text class="round-header" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="13" fill="%s" text-anchor="middle" letter-spacing="0.5">%s</text>`+"\n",
		h.CX, h.Y, darkMuted, EscapeXML(HeaderLabel(h)))
}

func (Dark) RenderBox(buf *bytes.Buffer, b Box) {
	border := darkBorder
	if b.Decided {
		border = darkAccent
	}
	fmt.Fprintf(buf, `  <rect id="match-%s" class="match" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s" stroke="%s" stroke-width="1.5" filter="url(#box-glow)"%s/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, darkBox, border, feedersAttr(b))
	mid := b.Y + b.H/2
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		b.X+4, mid, b.X+b.W-4, mid, darkBorder)
}

func (Dark) RenderText(buf *bytes.Buffer, b Box) {
	buf.WriteString(`  <g font-family="Helvetica, Arial, sans-serif">` + "\n")
	writeLines(buf, b, darkText, darkAccent, darkMuted)
	buf.WriteString("  </g>\n")
}

func (Dark) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <line class="connector %s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" stroke-linecap="round"/>`+"\n",
		c.Kind, c.X1, c.Y1, c.X2, c.Y2, darkBorder)
}
