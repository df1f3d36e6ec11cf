package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, apperr.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"dark", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"bracket", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.RowHeight != layout.DefaultRowHeight {
		t.Errorf("RowHeight = %v, want %v", opts.RowHeight, layout.DefaultRowHeight)
	}
	if opts.BoxWidth != 220 || opts.BoxHeight != 80 || opts.ColumnGap != 60 {
		t.Errorf("box/gap defaults = %v/%v/%v", opts.BoxWidth, opts.BoxHeight, opts.ColumnGap)
	}
	if opts.Style != DefaultStyle || opts.VizType != DefaultVizType {
		t.Errorf("style/viz defaults = %q/%q", opts.Style, opts.VizType)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// idempotent
	opts.Style = "bogus"
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() should be a no-op, got %v", err)
	}
}

func TestOptionsKeepZero(t *testing.T) {
	opts := Options{}
	opts.KeepZero("margin", "column_gap", "row_height")
	opts.SetLayoutDefaults()

	if opts.Margin != 0 || opts.ColumnGap != 0 {
		t.Errorf("margin/column gap = %v/%v, want 0/0", opts.Margin, opts.ColumnGap)
	}
	if opts.FlowGap != layout.DefaultFlowGap || opts.HeaderHeight != layout.DefaultHeaderHeight {
		t.Errorf("unmarked zeros = %v/%v, want defaults", opts.FlowGap, opts.HeaderHeight)
	}
	// row height has no usable zero
	if opts.RowHeight != layout.DefaultRowHeight {
		t.Errorf("RowHeight = %v, want %v", opts.RowHeight, layout.DefaultRowHeight)
	}

	// marks do not leak into copies taken before KeepZero
	base := Options{}
	copied := base
	copied.KeepZero("flow_gap")
	base.SetLayoutDefaults()
	if base.FlowGap != layout.DefaultFlowGap {
		t.Errorf("FlowGap = %v, want default", base.FlowGap)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code apperr.Code
	}{
		{"negative row height", Options{RowHeight: -1}, apperr.ErrCodeInvalidInput},
		{"negative margin", Options{Margin: -5}, apperr.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, apperr.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "neon"}, apperr.ErrCodeInvalidStyle},
		{"bad viz", Options{VizType: "tower"}, apperr.ErrCodeInvalidInput},
		{"negative scale", Options{Scale: -2}, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !apperr.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "dark", Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Scale != 0 {
		t.Errorf("svg key carries scale %v", k.Scale)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key scale = %v, want 3", k.Scale)
	}
	opts.VizType = VizTypeNodelink
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Format != "nodelink:svg" {
		t.Errorf("nodelink key format = %q", k.Format)
	}
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bracketview.toml")
	content := `
style = "dark"
formats = ["svg", "json"]
winners = true
row_height = 100.0
section = "Upper Bracket"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile() error = %v", err)
	}
	if opts.Style != "dark" || !opts.Winners || opts.RowHeight != 100 || opts.Section != "Upper Bracket" {
		t.Errorf("LoadOptionsFile() = %+v", opts)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
}

func TestLoadOptionsFileKeepsZeroGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tight.toml")
	if err := os.WriteFile(path, []byte("margin = 0.0\nheader_height = 0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile() error = %v", err)
	}
	opts.SetLayoutDefaults()
	if opts.Margin != 0 || opts.HeaderHeight != 0 {
		t.Errorf("margin/header = %v/%v, want 0/0", opts.Margin, opts.HeaderHeight)
	}
	if opts.ColumnGap != layout.DefaultColumnGap {
		t.Errorf("ColumnGap = %v, want default %v", opts.ColumnGap, layout.DefaultColumnGap)
	}
}

func TestLoadOptionsFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOptionsFile(filepath.Join(dir, "none.toml")); !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	typo := filepath.Join(dir, "typo.toml")
	if err := os.WriteFile(typo, []byte("stlye = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptionsFile(typo); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("unknown key error = %v, want INVALID_FORMAT", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("style = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptionsFile(broken); !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
		t.Errorf("syntax error = %v, want INVALID_FORMAT", err)
	}
}
