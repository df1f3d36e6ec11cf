package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/observability"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays out the selected sections of doc. Sections are laid
// out concurrently, each with its own positioner; the result keeps
// document order. The first failing section cancels the rest.
func GenerateLayout(ctx context.Context, doc *bracket.Document, opts Options) (layout.Document, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Document{}, err
	}
	sections, err := SelectSections(doc, opts.Section)
	if err != nil {
		return layout.Document{}, err
	}

	out := layout.Document{Title: doc.Title, Sections: make([]layout.Layout, len(sections))}
	layoutOpts := opts.LayoutOptions()

	g, gctx := errgroup.WithContext(ctx)
	for i := range sections {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l, err := layoutSection(gctx, &sections[i], layoutOpts)
			if err != nil {
				return err
			}
			out.Sections[i] = l
			opts.Logger.Debug("laid out section",
				"section", l.Title,
				"mode", l.Mode,
				"boxes", len(l.Boxes),
				"connectors", len(l.Connectors))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return layout.Document{}, err
	}
	return out, nil
}

func layoutSection(ctx context.Context, sec *bracket.Section, opts []layout.Option) (layout.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, sec.Title, sec.MatchCount())
	start := time.Now()

	l, err := layout.Build(sec, opts...)

	hooks.OnLayoutComplete(ctx, sec.Title, time.Since(start), err)
	return l, err
}
