// Package pkg provides the core libraries for bracketview tournament
// bracket rendering.
//
// # Overview
//
// bracketview turns a tournament bracket (sections of rounds of matches) into
// a drawing where every match sits exactly halfway between the two matches
// that feed it. The pkg directory is organized into these areas:
//
//  1. [bracket] - Domain model, validation and bracket generation
//  2. [render/bracket/layout] - The positioning engine and box/connector geometry
//  3. [render/bracket/sink], [render/bracket/styles] - Output formats and looks
//  4. [render/nodelink] - Graphviz node-link diagrams of the feeder graph
//  5. [io] - Reading and writing bracket and layout files
//  6. [pipeline] - Orchestration (import → layout → render) with caching
//
// # Architecture
//
// The typical data flow through bracketview:
//
//	Bracket file (JSON, TOML, YAML)
//	         ↓
//	    [io] package (decode, normalize, validate)
//	         ↓
//	    [render/bracket/layout] package (positions, boxes, connectors)
//	         ↓
//	    [render/bracket/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
// Lay out and render one section:
//
//	import (
//	    "github.com/matzehuels/bracketview/pkg/bracket"
//	    "github.com/matzehuels/bracketview/pkg/render/bracket/layout"
//	    "github.com/matzehuels/bracketview/pkg/render/bracket/sink"
//	)
//
//	sec, _ := bracket.Generate("Main", []string{"A", "B", "C", "D"}, bracket.GenerateOptions{})
//	l, _ := layout.Build(&sec)
//	svg := sink.RenderSVG(layout.Document{Sections: []layout.Layout{l}})
//
// Query the engine directly:
//
//	p, _ := layout.NewPositioner([]int{4, 2, 1}, 120)
//	y, _ := p.Position(2, 0)   // 180
//	gap, _ := p.Connector(0, 0) // 120
//
// # Supporting Packages
//
// [errors] - Coded errors (SHAPE_MISMATCH, INVALID_INDEX, ...) shared by
// every package.
//
// [cache] - Cache interface with file and null backends plus content-hash
// keyers, used by the pipeline runner.
//
// [observability] - Hooks for import, layout, render and cache events.
//
// [render] - Format conversion (SVG to PDF/PNG) through rsvg-convert.
//
// [buildinfo] - Version information injected at build time.
//
// [bracket]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/bracket
// [render/bracket/layout]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/render/bracket/layout
// [render/bracket/sink]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/render/bracket/sink
// [render/bracket/styles]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/render/bracket/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bracketview/pkg/buildinfo
package pkg
