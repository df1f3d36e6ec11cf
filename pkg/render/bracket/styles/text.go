package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	fontCharWidth = 0.55
	fontSizeMin   = 9.0
	fontSizeMax   = 16.0
	linePadding   = 10.0
	scoreColumn   = 28.0
)

// FontSize returns the team line font size for a box: half a row of the
// box, clamped to a readable range.
func FontSize(b Box) float64 {
	return max(fontSizeMin, min(fontSizeMax, b.H/2*0.45))
}

// LineY returns the baseline of team line i (0 = top) inside b.
func LineY(b Box, i int) float64 {
	row := b.H / 2
	return b.Y + row*float64(i) + row/2 + FontSize(b)*0.35
}

// TruncateLabel shortens label so it fits the name column of b, appending
// ".." when cut. Labels are counted in runes.
func TruncateLabel(b Box, label string) string {
	avail := b.W - 2*linePadding - scoreColumn
	maxChars := max(3, int(avail/(FontSize(b)*fontCharWidth)))
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	r := []rune(label)
	return string(r[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// HeaderLabel formats a round header, e.g. "Semifinals · Bo3".
func HeaderLabel(h Header) string {
	if h.BestOf > 0 {
		return fmt.Sprintf("%s · Bo%d", h.Name, h.BestOf)
	}
	return h.Name
}

// writeLines renders the team lines shared by both styles.
func writeLines(buf *bytes.Buffer, b Box, fill, winnerFill, muted string) {
	size := FontSize(b)
	for i, ln := range b.Teams {
		if i > 1 {
			break
		}
		color := fill
		weight := "normal"
		switch {
		case ln.Bye:
			color = muted
		case ln.Winner:
			color, weight = winnerFill, "bold"
		}
		y := LineY(b, i)
		fmt.Fprintf(buf, `  <text class="team" data-match="%s" x="%.2f" y="%.2f" font-size="%.1f" font-weight="%s" fill="%s">%s</text>`+"\n",
			EscapeXML(b.ID), b.X+linePadding, y, size, weight, color, EscapeXML(TruncateLabel(b, ln.Name)))
		if ln.Score != "" {
			fmt.Fprintf(buf, `  <text class="score" x="%.2f" y="%.2f" font-size="%.1f" font-weight="%s" fill="%s" text-anchor="end">%s</text>`+"\n",
				b.X+b.W-linePadding, y, size, weight, color, EscapeXML(ln.Score))
		}
	}
}

// feedersAttr returns a data-feeders attribute for b, or "".
func feedersAttr(b Box) string {
	if len(b.Feeders) == 0 {
		return ""
	}
	return fmt.Sprintf(` data-feeders="%s"`, EscapeXML(strings.Join(b.Feeders, " ")))
}
