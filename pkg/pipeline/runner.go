package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/cache"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
	bvio "github.com/matzehuels/bracketview/pkg/io"
	"github.com/matzehuels/bracketview/pkg/observability"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it does not
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Import reads a bracket file. See [Import].
func (r *Runner) Import(ctx context.Context, path string) (*bracket.Document, error) {
	doc, err := Import(ctx, path)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("imported bracket", "path", path, "sections", len(doc.Sections), "matches", doc.MatchCount())
	return doc, nil
}

// Execute runs the layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *bracket.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	layoutStart := time.Now()
	ld, hit, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = ld
	result.DocHash = DocumentHash(doc)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Sections = len(ld.Sections)
	for _, l := range ld.Sections {
		result.Stats.Matches += len(l.Boxes)
	}
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"sections", result.Stats.Sections,
		"matches", result.Stats.Matches,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, ld, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of doc with caching and reports
// whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *bracket.Document, opts Options) (layout.Document, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Document{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(DocumentHash(doc), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := bvio.UnmarshalLayouts(data); err == nil {
				hooks.OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, keyTypeLayout)
	}

	ld, err := GenerateLayout(ctx, doc, opts)
	if err != nil {
		return layout.Document{}, false, err
	}

	if data, err := bvio.MarshalLayouts(ld); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			hooks.OnCacheSet(ctx, keyTypeLayout, len(data))
		} else {
			r.Logger.Warn("cache write failed", "stage", keyTypeLayout, "error", err)
		}
	}
	return ld, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *bracket.Document, opts Options) (layout.Document, error) {
	ld, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return ld, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ld layout.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts = applyLayoutMetadata(opts, ld)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := bvio.MarshalLayouts(ld)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	rendered, err := Render(ctx, ld, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, ld layout.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, ld, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DocumentHash returns the content hash of doc used in cache keys.
func DocumentHash(doc *bracket.Document) string {
	data, _ := json.Marshal(doc)
	return cache.Hash(data)
}
