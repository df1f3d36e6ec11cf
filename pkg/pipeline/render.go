package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
	bvio "github.com/matzehuels/bracketview/pkg/io"
	"github.com/matzehuels/bracketview/pkg/observability"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
	"github.com/matzehuels/bracketview/pkg/render/bracket/sink"
	"github.com/matzehuels/bracketview/pkg/render/bracket/styles"
	"github.com/matzehuels/bracketview/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats from a
// computed layout.
func Render(ctx context.Context, ld layout.Document, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, ld)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var artifacts map[string][]byte
	var err error
	if opts.IsNodelink() {
		artifacts, err = renderNodelink(ctx, ld, opts)
	} else {
		artifacts, err = renderBracket(ctx, ld, opts)
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// renderBracket generates bracket outputs.
func renderBracket(ctx context.Context, ld layout.Document, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}
	ld.Style = opts.Style

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(ld, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ld, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ld, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(ld, sink.WithJSONStyle(opts.Style))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(ToBracket(ld), nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, apperr.New(apperr.ErrCodeUnsupported, "unsupported bracket format: %s", format)
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderNodelink generates node-link outputs through Graphviz.
func renderNodelink(ctx context.Context, ld layout.Document, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(ToBracket(ld), nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = bvio.MarshalLayouts(ld)
		default:
			return nil, apperr.New(apperr.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLayoutMetadata takes the style recorded in a serialized layout when
// none was requested.
func applyLayoutMetadata(opts Options, ld layout.Document) Options {
	if opts.Style == "" && ld.Style != "" {
		opts.Style = ld.Style
	}
	return opts
}

func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Interaction {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	if opts.Winners {
		svgOpts = append(svgOpts, sink.WithWinners())
	}
	return svgOpts, nil
}

// ToBracket rebuilds the bracket document a layout was computed from, using
// the match data carried by every box and the round names of the columns.
func ToBracket(ld layout.Document) bracket.Document {
	doc := bracket.Document{Title: ld.Title}
	for _, l := range ld.Sections {
		sec := bracket.Section{Title: l.Title, Mode: l.Mode, Rounds: make([]bracket.Round, len(l.Columns))}
		for _, c := range l.Columns {
			if c.Round >= 0 && c.Round < len(sec.Rounds) {
				sec.Rounds[c.Round].Name = c.Name
				sec.Rounds[c.Round].BestOf = c.BestOf
			}
		}
		for _, b := range l.Boxes {
			if b.Round < 0 || b.Round >= len(sec.Rounds) {
				continue
			}
			sec.Rounds[b.Round].Matches = append(sec.Rounds[b.Round].Matches, b.Match)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}
