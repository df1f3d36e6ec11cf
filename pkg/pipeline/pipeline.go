// Package pipeline provides the bracketview pipeline: import, layout and
// render.
//
// This package implements the complete import → layout → render pipeline
// used by every CLI command, so all entry points share defaults,
// validation, caching and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: read a bracket file (JSON, TOML or YAML), normalize and validate it
//  2. Layout: compute box and connector geometry for every section
//  3. Render: generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Sections are laid out concurrently. Every section gets its own
// [layout.Positioner], so memoized positions never leak between sections.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := runner.Import(ctx, "cup.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracketview/pkg/cache"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
	"github.com/matzehuels/bracketview/pkg/render/bracket/styles"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = styles.StyleSimple

	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeBracket

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Visualization types.
const (
	VizTypeBracket  = "bracket"
	VizTypeNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeBracket:  true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It can be loaded
// from a TOML options file with [LoadOptionsFile].
type Options struct {
	// Import options
	Section string `json:"section,omitempty" toml:"section"` // lay out only this section

	// Layout options
	RowHeight    float64 `json:"row_height,omitempty" toml:"row_height"`
	BoxWidth     float64 `json:"box_width,omitempty" toml:"box_width"`
	BoxHeight    float64 `json:"box_height,omitempty" toml:"box_height"`
	ColumnGap    float64 `json:"column_gap,omitempty" toml:"column_gap"`
	FlowGap      float64 `json:"flow_gap,omitempty" toml:"flow_gap"`
	HeaderHeight float64 `json:"header_height,omitempty" toml:"header_height"`
	Margin       float64 `json:"margin,omitempty" toml:"margin"`

	// Render options
	VizType     string   `json:"viz_type,omitempty" toml:"viz_type"`
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Style       string   `json:"style,omitempty" toml:"style"`
	Interaction bool     `json:"interaction,omitempty" toml:"interaction"`
	Winners     bool     `json:"winners,omitempty" toml:"winners"`
	Scale       float64  `json:"scale,omitempty" toml:"scale"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed"` // node-link labels
	Refresh     bool     `json:"refresh,omitempty" toml:"refresh"`   // bypass the cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool

	// zeroSet holds the TOML keys of fields explicitly set to 0.
	zeroSet map[string]bool
}

// Geometry keys whose zero value is meaningful. Row height and box size
// have no usable zero, so 0 always means the default for them.
var zeroableKeys = map[string]bool{
	"column_gap":    true,
	"flow_gap":      true,
	"header_height": true,
	"margin":        true,
}

// KeepZero records that the fields named by TOML key (for example
// "margin") were set on purpose, so a 0 there survives
// [Options.SetLayoutDefaults] instead of becoming the default. Keys that
// have no meaningful zero are ignored.
func (o *Options) KeepZero(keys ...string) {
	next := make(map[string]bool, len(o.zeroSet)+len(keys))
	for k := range o.zeroSet {
		next[k] = true
	}
	for _, k := range keys {
		if zeroableKeys[k] {
			next[k] = true
		}
	}
	o.zeroSet = next
}

func (o *Options) unset(v float64, key string) bool {
	return v == 0 && !o.zeroSet[key]
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout holds the geometry of every rendered section.
	Layout layout.Document

	// DocHash is the content hash of the imported document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sections   int
	Matches    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	if err != nil || style == "" {
		return apperr.New(apperr.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: %s)", vizType, strings.Join(sortedKeys(ValidVizTypes), ", "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation. A zero
// field counts as unset unless it was marked with [Options.KeepZero].
func (o *Options) SetLayoutDefaults() {
	if o.RowHeight == 0 {
		o.RowHeight = layout.DefaultRowHeight
	}
	if o.BoxWidth == 0 {
		o.BoxWidth = layout.DefaultBoxWidth
	}
	if o.BoxHeight == 0 {
		o.BoxHeight = layout.DefaultBoxHeight
	}
	if o.unset(o.ColumnGap, "column_gap") {
		o.ColumnGap = layout.DefaultColumnGap
	}
	if o.unset(o.FlowGap, "flow_gap") {
		o.FlowGap = layout.DefaultFlowGap
	}
	if o.unset(o.HeaderHeight, "header_height") {
		o.HeaderHeight = layout.DefaultHeaderHeight
	}
	if o.unset(o.Margin, "margin") {
		o.Margin = layout.DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and rejects negative geometry.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for name, v := range map[string]float64{
		"row_height":    o.RowHeight,
		"box_width":     o.BoxWidth,
		"box_height":    o.BoxHeight,
		"column_gap":    o.ColumnGap,
		"flow_gap":      o.FlowGap,
		"header_height": o.HeaderHeight,
		"margin":        o.Margin,
	} {
		if v < 0 {
			return apperr.New(apperr.ErrCodeInvalidInput, "%s must not be negative, got %v", name, v)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "scale must not be negative, got %v", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// IsNodelink returns true if this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutOptions converts the geometry settings into [layout.Option]s.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithRowHeight(o.RowHeight),
		layout.WithBoxSize(o.BoxWidth, o.BoxHeight),
		layout.WithColumnGap(o.ColumnGap),
		layout.WithFlowGap(o.FlowGap),
		layout.WithHeaderHeight(o.HeaderHeight),
		layout.WithMargin(o.Margin),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Section:      strings.ToLower(o.Section),
		RowHeight:    o.RowHeight,
		BoxWidth:     o.BoxWidth,
		BoxHeight:    o.BoxHeight,
		ColumnGap:    o.ColumnGap,
		FlowGap:      o.FlowGap,
		HeaderHeight: o.HeaderHeight,
		Margin:       o.Margin,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Interaction: o.Interaction,
		Winners:     o.Winners,
		Detailed:    o.Detailed,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.IsNodelink() {
		k.Format = VizTypeNodelink + ":" + format
	}
	return k
}
