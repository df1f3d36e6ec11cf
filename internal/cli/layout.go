package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	bvio "github.com/matzehuels/bracketview/pkg/io"
	"github.com/matzehuels/bracketview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing bracket layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [bracket-file]",
		Short: "Compute the layout of a bracket file",
		Long: `Compute the layout of a bracket file.

The layout command reads a bracket (JSON, TOML or YAML) and computes the
position of every match box and connector. The output is a layout.json file
(same format as 'render -f json') that can be rendered to SVG/PNG/PDF using
the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.resolveOptions(cmd, opts, "")
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], resolved, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "ignore cached results")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the bracket, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Import(ctx, input)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	ld, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = artifactPath(basePath("", input), pipeline.FormatJSON)
	}
	if err := bvio.WriteLayoutFile(ld, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	matches := 0
	for _, l := range ld.Sections {
		matches += len(l.Boxes)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(ld.Sections), matches, cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
