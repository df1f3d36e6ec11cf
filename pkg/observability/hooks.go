// Package observability lets callers watch the bracket pipeline without
// tying it to a metrics or tracing backend.
//
// Two hook sets exist: [PipelineHooks] for import, per-section layout and
// render events, and [CacheHooks] for layout and artifact cache lookups.
// Both default to no-ops. The CLI registers a logger-backed implementation
// that reports every event at debug level:
//
//	observability.SetPipelineHooks(myHooks)
//	observability.SetCacheHooks(myHooks)
//
// Pipeline code fetches the current hooks at the start of each stage:
//
//	h := observability.Pipeline()
//	h.OnLayoutStart(ctx, sec.Title, sec.MatchCount())
//	l, err := layout.Build(sec)
//	h.OnLayoutComplete(ctx, sec.Title, time.Since(start), err)
//
// Layout events fire from concurrent goroutines, one per section, so
// implementations must be safe for concurrent use.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives stage events. Every Start is paired with a
// Complete carrying the stage duration and its error, if any.
type PipelineHooks interface {
	// OnImportStart fires before a bracket file is read; source is its path.
	OnImportStart(ctx context.Context, source string)
	OnImportComplete(ctx context.Context, source string, sections int, duration time.Duration, err error)

	// OnLayoutStart fires once per laid-out section.
	OnLayoutStart(ctx context.Context, section string, matches int)
	OnLayoutComplete(ctx context.Context, section string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups and writes. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports a stored entry of size bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores every event. It is the default.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnImportStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnImportComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks ignores every event. It is the default.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry holds the process-wide hooks.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = &registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
// Register before the first pipeline run; later runs pick up the change.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset puts the no-op hooks back. Tests that register hooks defer it.
func Reset() {
	hooks.mu.Lock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.mu.Unlock()
}
