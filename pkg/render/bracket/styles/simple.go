package styles

import (
	"bytes"
	"fmt"
)

// Simple is a clean light style: white boxes, grey connectors.
type Simple struct{}

func (Simple) RenderDefs(*bytes.Buffer, float64, float64) {}

func (Simple) RenderTitle(buf *bytes.Buffer, t Title) {
	fmt.Fprintf(buf, `  <text class="section-title" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="20" font-weight="bold" fill="#222">%s</text>`+"\n",
		t.X, t.Y, EscapeXML(t.Text))
}

func (Simple) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf, `  <text class="round-header" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="13" fill="#555" text-anchor="middle">%s</text>`+"\n",
		h.CX, h.Y, EscapeXML(HeaderLabel(h)))
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="match-%s" class="match" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="white" stroke="#333" stroke-width="1.5"%s/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, feedersAttr(b))
	mid := b.Y + b.H/2
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#ddd" stroke-width="1"/>`+"\n",
		b.X, mid, b.X+b.W, mid)
}

func (Simple) RenderText(buf *bytes.Buffer, b Box) {
	buf.WriteString(`  <g font-family="Helvetica, Arial, sans-serif">` + "\n")
	writeLines(buf, b, "#333", "#0a7d32", "#aaa")
	buf.WriteString("  </g>\n")
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf, `  <line class="connector %s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#888" stroke-width="2" stroke-linecap="square"/>`+"\n",
		c.Kind, c.X1, c.Y1, c.X2, c.Y2)
}
