package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	bvio "github.com/matzehuels/bracketview/pkg/io"
	"github.com/matzehuels/bracketview/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)
	// An unset style lets the style recorded in the layout file win.
	opts.Style = ""

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout' or
'render -f json') and renders it to SVG, PNG, PDF or DOT. The layout
contains all positioning information, so this step is purely about
rendering. The style recorded in the layout is used unless --style is set.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a bracket file to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.resolveOptions(cmd, opts, formatsStr)
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], resolved, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &opts, &formatsStr)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	ld, err := bvio.ReadLayoutFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, ld, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	matches := 0
	for _, l := range ld.Sections {
		matches += len(l.Boxes)
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		sections:  len(ld.Sections),
		matches:   matches,
		cacheHit:  cacheHit,
	})
}
