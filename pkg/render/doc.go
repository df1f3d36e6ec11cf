// Package render provides output conversion shared by the bracket and
// node-link renderers.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(doc, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Bracket Rendering
//
// The bracket subpackages turn a [bracket.Section] into a picture:
//   - [bracket/layout]: the position engine and box/connector geometry
//   - [bracket/styles]: visual styles (simple, dark)
//   - [bracket/sink]: output formats (SVG, JSON, PNG, PDF)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the feeder relation of a bracket as a
// directed graph through Graphviz.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [bracket.Section]: github.com/matzehuels/bracketview/pkg/bracket.Section
// [bracket/layout]: github.com/matzehuels/bracketview/pkg/render/bracket/layout
// [bracket/styles]: github.com/matzehuels/bracketview/pkg/render/bracket/styles
// [bracket/sink]: github.com/matzehuels/bracketview/pkg/render/bracket/sink
// [nodelink]: github.com/matzehuels/bracketview/pkg/render/nodelink
package render
