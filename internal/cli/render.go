package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/pipeline"
)

// renderCommand creates the render command, the one-step path from a
// bracket file to output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [bracket-file]",
		Short: "Lay out and render a bracket file",
		Long: `Lay out and render a bracket file.

The render command reads a bracket (JSON, TOML or YAML), lays out every
section and writes the requested formats next to the input file. It is
equivalent to running 'layout' followed by 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.resolveOptions(cmd, opts, formatsStr)
			if err != nil {
				return err
			}
			if err := resolved.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], resolved, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runRender imports the bracket, runs the pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Import(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		sections:  result.Stats.Sections,
		matches:   result.Stats.Matches,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes a set of rendered artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	sections  int
	matches   int
	cacheHit  bool
}

// writeArtifacts writes each artifact to disk. A single format is written
// to output when given; otherwise every format gets base + extension.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(base, format)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if path == p.input {
			return fmt.Errorf("refusing to overwrite input file %s", p.input)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.sections, p.matches, p.cacheHit)
	return nil
}
