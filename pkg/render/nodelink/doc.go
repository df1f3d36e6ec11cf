// Package nodelink renders the feeder relation of a bracket as a
// node-link diagram.
//
// Each match is a box and each feeder relation an arrow pointing at the
// match it feeds, so a binary section reads left to right from the first
// round to the final. It is an alternative view to the bracket layout,
// handy for checking that a hand-written bracket file is wired the way
// it was meant to be.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
