package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/pipeline"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// positionsCommand creates the positions command, which prints the vertical
// position of every match and the length of every link connector.
func (c *CLI) positionsCommand() *cobra.Command {
	var (
		section   string
		rowHeight float64
	)

	cmd := &cobra.Command{
		Use:   "positions [bracket-file]",
		Short: "Print match positions and connector lengths",
		Long: `Print match positions and connector lengths.

For every binary section the table lists each match's vertical position
and, for the top match of each pair, the length of the link joining it to
its sibling. Linear sections list their stacked positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPositions(cmd.Context(), args[0], section, rowHeight)
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "only print the section with this title")
	cmd.Flags().Float64Var(&rowHeight, "row-height", layout.DefaultRowHeight, "vertical distance between first-round matches")

	return cmd
}

func (c *CLI) runPositions(ctx context.Context, input, section string, rowHeight float64) error {
	if rowHeight <= 0 {
		return fmt.Errorf("row-height must be positive, got %v", rowHeight)
	}
	doc, err := pipeline.Import(ctx, input)
	if err != nil {
		return err
	}
	sections, err := pipeline.SelectSections(doc, section)
	if err != nil {
		return err
	}

	for i := range sections {
		rows, err := positionRows(&sections[i], rowHeight)
		if err != nil {
			return err
		}
		if i > 0 {
			printNewline()
		}
		fmt.Println(StyleTitle.Render(sections[i].Title))
		fmt.Println(positionsTable(rows))
	}
	return nil
}

// positionRows computes one table row per match: round label, index, ID,
// position and link length ("-" where the match owns no link).
func positionRows(sec *bracket.Section, rowHeight float64) ([][]string, error) {
	opts := []layout.Option{layout.WithRowHeight(rowHeight)}
	var p *layout.Positioner
	if sec.IsBinary() {
		var err error
		p, err = layout.NewPositioner(sec.Counts(), rowHeight)
		if err != nil {
			return nil, err
		}
		opts = append(opts, layout.WithPositioner(p))
	}

	l, err := layout.Build(sec, opts...)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(l.Boxes))
	for _, b := range l.Boxes {
		link := "-"
		if p != nil {
			if n, err := p.Connector(b.Round, b.Index); err == nil {
				link = formatFloat(n)
			}
		}
		rows = append(rows, []string{
			sec.RoundLabel(b.Round),
			strconv.Itoa(b.Index),
			b.MatchID,
			formatFloat(b.Position),
			link,
		})
	}
	return rows, nil
}

// positionsTable renders rows as a bordered table.
func positionsTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Round", "Match", "ID", "Position", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col >= 3 {
				return cellStyle.Foreground(colorCyan).Align(lipgloss.Right)
			}
			if col == 2 {
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		})
	return t.Render()
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
