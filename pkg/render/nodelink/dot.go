package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
	"github.com/matzehuels/bracketview/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the match ID and best-of count to node labels.
	// When false, only the pairing ("A 2:1 B" or "A vs B") is shown.
	Detailed bool
}

// ToDOT converts a bracket document to Graphviz DOT format. Every section
// becomes a cluster and every match a node; binary sections get an edge
// from each feeder to the match it feeds. Linear sections have no edges.
//
// Matches with a recorded winner are outlined bold, bye matches dashed.
func ToDOT(doc bracket.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	if doc.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", doc.Title)
	}

	for s := range doc.Sections {
		sec := &doc.Sections[s]
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", s)
		fmt.Fprintf(&buf, "    label=%q;\n", sec.Title)
		buf.WriteString("    style=rounded;\n")
		for r, round := range sec.Rounds {
			for i := range round.Matches {
				m := &round.Matches[i]
				attrs := fmtAttrs(m, fmtLabel(m, round, opts.Detailed))
				fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(s, r, i, m), strings.Join(attrs, ", "))
			}
		}
		buf.WriteString("  }\n")

		if !sec.IsBinary() {
			continue
		}
		for r := 1; r < len(sec.Rounds); r++ {
			for i := range sec.Rounds[r].Matches {
				prev, top, bottom, _ := bracket.Feeders(r, i)
				to := nodeID(s, r, i, &sec.Rounds[r].Matches[i])
				for _, f := range []int{top, bottom} {
					if f < len(sec.Rounds[prev].Matches) {
						fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(s, prev, f, &sec.Rounds[prev].Matches[f]), to)
					}
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID returns the match ID, or a positional name for unnamed matches.
// Positional names contain spaces, which valid match IDs never do, so they
// cannot collide with a supplied ID.
func nodeID(section, round, index int, m *bracket.Match) string {
	if m.ID != "" {
		return m.ID
	}
	return fmt.Sprintf("s%d r%d m%d", section+1, round+1, index+1)
}

func fmtLabel(m *bracket.Match, round bracket.Round, detailed bool) string {
	if !detailed {
		return m.Label()
	}
	parts := []string{m.Label()}
	if m.ID != "" {
		parts = append([]string{m.ID}, parts...)
	}
	if round.BestOf > 0 {
		parts = append(parts, fmt.Sprintf("Bo%d", round.BestOf))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(m *bracket.Match, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	bye := false
	for _, t := range m.Teams {
		bye = bye || t.Bye
	}
	switch {
	case bye:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	default:
		if _, ok := m.Winner(); ok {
			attrs = append(attrs, "penwidth=2")
		}
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element (pt units, odd
// origin) with a plain viewBox anchored at 0,0.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
