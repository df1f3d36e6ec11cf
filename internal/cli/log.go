// Package cli implements the bracketview command-line interface.
//
// This package provides commands for laying out tournament brackets,
// rendering them as SVG, PNG, PDF, JSON or DOT, inspecting computed
// positions, generating new bracket files and browsing brackets in the
// terminal. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Lay out a bracket file and write the requested formats
//   - layout: Write the computed layout as JSON
//   - visualize: Render a previously computed layout
//   - validate: Check a bracket file without rendering it
//   - positions: Print match positions and connector lengths
//   - new: Generate a seeded single-elimination bracket file
//   - view: Browse a bracket interactively
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Pipeline
// and cache events are logged at debug level through observability hooks.
//
// # Example
//
//	import "github.com/matzehuels/bracketview/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracketview/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnImportStart(_ context.Context, source string) {
	h.logger.Debug("importing", "source", source)
}

func (h logHooks) OnImportComplete(_ context.Context, source string, sections int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("imported", "source", source, "sections", sections, "duration", d)
}

func (h logHooks) OnLayoutStart(_ context.Context, section string, matches int) {
	h.logger.Debug("layout started", "section", section, "matches", matches)
}

func (h logHooks) OnLayoutComplete(_ context.Context, section string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "section", section, "error", err)
		return
	}
	h.logger.Debug("layout done", "section", section, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("rendered", "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// registerHooks routes observability events to the CLI logger.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}
