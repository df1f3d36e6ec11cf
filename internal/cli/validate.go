package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [bracket-file]",
		Short: "Check a bracket file without rendering it",
		Long: `Check a bracket file without rendering it.

The file is parsed, unknown fields are rejected and every binary section is
checked for a strict halving shape: each round feeding a later round must
have an even number of matches and the next round exactly half of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, input string) error {
	prog := newProgress(c.Logger)
	doc, err := pipeline.Import(ctx, input)
	if err != nil {
		printError("%s is invalid", input)
		return err
	}
	c.Logger.Debug("validated", "path", input, "matches", doc.MatchCount())

	printSuccess("%s is valid", input)
	for i := range doc.Sections {
		printDetail("%s", sectionSummary(&doc.Sections[i]))
	}
	prog.done("Validation finished")
	return nil
}

// sectionSummary describes a section on one line, e.g.
// "Upper Bracket · binary · 3 rounds · 7 matches".
func sectionSummary(s *bracket.Section) string {
	mode := bracket.ModeBinary
	if s.IsLinear() {
		mode = bracket.ModeLinear
	}
	return fmt.Sprintf("%s · %s · %s · %s", s.Title, mode,
		plural(len(s.Rounds), "round"), plural(s.MatchCount(), "match"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if noun == "match" {
		return fmt.Sprintf("%d matches", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
