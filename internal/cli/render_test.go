package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cup.json")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")},
		formats:   []string{"svg", "json"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}

	for _, name := range []string{"cup.svg", "cup.layout.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(input); !os.IsNotExist(err) {
		t.Error("input path was written")
	}
}

func TestWriteArtifactsSingleOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "poster.png")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"png": []byte("png-bytes")},
		formats:   []string{"png"},
		input:     filepath.Join(dir, "cup.toml"),
		output:    output,
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil || string(data) != "png-bytes" {
		t.Errorf("output = %q, %v", data, err)
	}
}

func TestWriteArtifactsRefusesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cup.layout.json")
	if err := os.WriteFile(input, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}")},
		formats:   []string{"json"},
		input:     input,
	})
	if err == nil {
		t.Fatal("writeArtifacts() should refuse to overwrite its input")
	}
	if data, _ := os.ReadFile(input); string(data) != "original" {
		t.Error("input file was modified")
	}
}

// newFlagCommand builds a command with the shared flags bound to opts.
func newFlagCommand(opts *pipeline.Options, formats *string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addLayoutFlags(cmd, opts)
	addRenderFlags(cmd, opts, formats)
	return cmd
}

func TestResolveOptionsWithoutConfig(t *testing.T) {
	var opts pipeline.Options
	setCLIDefaults(&opts)
	var formats string
	cmd := newFlagCommand(&opts, &formats)
	if err := cmd.ParseFlags([]string{"--style", "dark", "-f", "svg,dot"}); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	got, err := c.resolveOptions(cmd, opts, formats)
	if err != nil {
		t.Fatal(err)
	}
	if got.Style != "dark" || got.RowHeight != 120 {
		t.Errorf("resolveOptions() style=%q row height=%v", got.Style, got.RowHeight)
	}
	if len(got.Formats) != 2 || got.Formats[1] != "dot" {
		t.Errorf("Formats = %v", got.Formats)
	}
	if got.Logger != c.Logger {
		t.Error("Logger not set to the CLI logger")
	}
}

func TestResolveOptionsConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "bracketview.toml")
	content := "style = \"dark\"\nrow_height = 90.0\nformats = [\"json\"]\nwinners = true\n"
	if err := os.WriteFile(config, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var opts pipeline.Options
	setCLIDefaults(&opts)
	var formats string
	cmd := newFlagCommand(&opts, &formats)
	if err := cmd.ParseFlags([]string{"--row-height", "150"}); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	c.configPath = config
	got, err := c.resolveOptions(cmd, opts, formats)
	if err != nil {
		t.Fatal(err)
	}

	if got.RowHeight != 150 {
		t.Errorf("RowHeight = %v, want flag value 150", got.RowHeight)
	}
	if got.Style != "dark" {
		t.Errorf("Style = %q, want config value dark (flag not set)", got.Style)
	}
	if !got.Winners {
		t.Error("Winners from config was lost")
	}
	if len(got.Formats) != 1 || got.Formats[0] != "json" {
		t.Errorf("Formats = %v, want config value [json]", got.Formats)
	}
}

func TestResolveOptionsMissingConfig(t *testing.T) {
	var opts pipeline.Options
	var formats string
	cmd := newFlagCommand(&opts, &formats)

	c := New(io.Discard, log.InfoLevel)
	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := c.resolveOptions(cmd, opts, formats); err == nil {
		t.Error("resolveOptions() with a missing config file should fail")
	}
}

func TestResolveOptionsZeroMarginFlag(t *testing.T) {
	var opts pipeline.Options
	setCLIDefaults(&opts)
	var formats string
	cmd := newFlagCommand(&opts, &formats)
	if err := cmd.ParseFlags([]string{"--margin", "0", "--column-gap", "0"}); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	got, err := c.resolveOptions(cmd, opts, formats)
	if err != nil {
		t.Fatal(err)
	}
	if err := got.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if got.Margin != 0 || got.ColumnGap != 0 {
		t.Errorf("margin/column gap = %v/%v, want 0/0", got.Margin, got.ColumnGap)
	}
	if got.FlowGap == 0 {
		t.Error("FlowGap lost its default")
	}
}
