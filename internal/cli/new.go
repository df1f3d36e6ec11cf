package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
	bvio "github.com/matzehuels/bracketview/pkg/io"
)

// newOpts holds the flags of the new command.
type newOpts struct {
	output      string
	title       string
	section     string
	teamsFile   string
	seeding     string
	bestOf      int
	finalBestOf int
	force       bool
}

// newCommand creates the new command, which generates a seeded
// single-elimination bracket file.
func (c *CLI) newCommand() *cobra.Command {
	opts := newOpts{
		output:  "bracket.json",
		section: "Main Bracket",
		seeding: string(bracket.SeedingStandard),
	}

	cmd := &cobra.Command{
		Use:   "new [team...]",
		Short: "Generate a bracket file from a list of teams",
		Long: `Generate a bracket file from a list of teams.

Teams are listed best seed first, either as arguments or one per line in
--teams-file (blank lines and lines starting with '#' are ignored). The
field is padded with byes to the next power of two and teams drawn against
a bye advance automatically. The output format follows the file extension
(.json, .toml, .yaml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (.json, .toml, .yaml)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().StringVar(&opts.section, "section", opts.section, "section title")
	cmd.Flags().StringVar(&opts.teamsFile, "teams-file", "", "read teams from a file, one per line")
	cmd.Flags().StringVar(&opts.seeding, "seeding", opts.seeding, "pairing: standard (1v8, 4v5, ...) or sequential (1v2, 3v4, ...)")
	cmd.Flags().IntVar(&opts.bestOf, "best-of", 1, "best-of count for every round but the final")
	cmd.Flags().IntVar(&opts.finalBestOf, "final-best-of", 0, "best-of count for the final (default --best-of)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing output file")

	return cmd
}

func (c *CLI) runNew(args []string, opts newOpts) error {
	teams := args
	if opts.teamsFile != "" {
		fromFile, err := readTeams(opts.teamsFile)
		if err != nil {
			return err
		}
		teams = append(fromFile, teams...)
	}

	if !opts.force {
		if _, err := os.Stat(opts.output); err == nil {
			return apperr.New(apperr.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", opts.output)
		}
	}

	sec, err := bracket.Generate(opts.section, teams, bracket.GenerateOptions{
		Seeding:     bracket.Seeding(opts.seeding),
		BestOf:      opts.bestOf,
		FinalBestOf: opts.finalBestOf,
	})
	if err != nil {
		return err
	}
	doc := &bracket.Document{Title: opts.title, Sections: []bracket.Section{sec}}
	if err := bracket.Validate(doc); err != nil {
		return err
	}
	if err := bvio.WriteFile(doc, opts.output); err != nil {
		return err
	}
	c.Logger.Debug("generated bracket", "teams", len(teams), "rounds", len(sec.Rounds))

	printSuccess("Bracket created")
	printFile(opts.output)
	printDetail("%s", sectionSummary(&sec))
	printNewline()
	printNextStep("Render", appName+" render "+opts.output)
	return nil
}

// readTeams reads team names from path, one per line.
func readTeams(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.New(apperr.ErrCodeFileNotFound, "teams file not found: %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "open teams file")
	}
	defer f.Close()

	var teams []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		teams = append(teams, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return teams, nil
}
