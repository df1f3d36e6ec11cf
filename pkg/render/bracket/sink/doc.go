// Package sink provides output format renderers for laid-out brackets.
//
// A "sink" transforms a computed [layout.Document] into a final output
// format:
//
//   - SVG: scalable vector graphics, sections stacked top to bottom
//   - JSON: layout data export for caching and re-rendering
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Options
//
//   - [WithStyle]: visual style ([styles.Simple] or [styles.Dark])
//   - [WithInteraction]: hover highlighting of a match and its feeders
//   - [WithWinners]: emphasize winning teams and decided matches
//
// Basic usage:
//
//	svg := sink.RenderSVG(doc,
//	    sink.WithStyle(styles.Dark{}),
//	    sink.WithWinners(),
//	)
//
// [layout.Document]: github.com/matzehuels/bracketview/pkg/render/bracket/layout.Document
// [styles.Simple]: github.com/matzehuels/bracketview/pkg/render/bracket/styles.Simple
// [styles.Dark]: github.com/matzehuels/bracketview/pkg/render/bracket/styles.Dark
package sink
