package bracket

import (
	"fmt"
	"strings"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Seeding selects how teams are paired in round 0.
type Seeding string

// Seeding strategies.
const (
	// SeedingStandard pairs best against worst (1v8, 4v5, 2v7, 3v6 for
	// eight teams) so top seeds can only meet late.
	SeedingStandard Seeding = "standard"
	// SeedingSequential pairs teams in list order (1v2, 3v4, ...).
	SeedingSequential Seeding = "sequential"
)

// GenerateOptions configures [Generate].
type GenerateOptions struct {
	Seeding     Seeding // pairing strategy (default SeedingStandard)
	BestOf      int     // best-of count for every round but the final (default 1)
	FinalBestOf int     // best-of count for the final (default BestOf)
	IDPrefix    string  // prefix for generated IDs (default Slug(title))
}

// Generate builds a binary section for the given teams, listed best seed
// first. The field is padded with byes to the next power of two. Teams
// drawn against a bye are marked as winners and advanced into round 1.
func Generate(title string, teams []string, opts GenerateOptions) (Section, error) {
	if err := apperr.ValidateTitle(title); err != nil {
		return Section{}, err
	}
	if len(teams) < 2 {
		return Section{}, apperr.New(apperr.ErrCodeInvalidInput, "need at least 2 teams, got %d", len(teams))
	}
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		name := strings.TrimSpace(t)
		if name == "" {
			return Section{}, apperr.New(apperr.ErrCodeInvalidInput, "team names cannot be empty")
		}
		if _, dup := seen[name]; dup {
			return Section{}, apperr.New(apperr.ErrCodeInvalidInput, "duplicate team %q", name)
		}
		seen[name] = struct{}{}
	}

	order, err := seedOrder(len(teams), opts.Seeding)
	if err != nil {
		return Section{}, err
	}

	bestOf := max(1, opts.BestOf)
	finalBestOf := opts.FinalBestOf
	if finalBestOf <= 0 {
		finalBestOf = bestOf
	}
	prefix := opts.IDPrefix
	if prefix == "" {
		prefix = Slug(title)
	}

	size := len(order)
	sec := Section{Title: title, Mode: ModeBinary}
	for matches := size / 2; matches >= 1; matches /= 2 {
		r := len(sec.Rounds)
		round := Round{
			ID:      fmt.Sprintf("%s-r%d", prefix, r+1),
			Name:    roundName(matches),
			BestOf:  bestOf,
			Matches: make([]Match, matches),
		}
		if matches == 1 {
			round.BestOf = finalBestOf
		}
		for m := range round.Matches {
			round.Matches[m] = Match{
				ID:    fmt.Sprintf("%s-r%d-m%d", prefix, r+1, m+1),
				Teams: make([]Team, 2),
			}
		}
		sec.Rounds = append(sec.Rounds, round)
	}

	first := sec.Rounds[0].Matches
	for i, seed := range order {
		slot := &first[i/2].Teams[i%2]
		if seed > len(teams) {
			*slot = Team{Bye: true}
			continue
		}
		*slot = Team{Name: strings.TrimSpace(teams[seed-1]), Seed: seed}
	}
	advanceByes(&sec)
	return sec, nil
}

// advanceByes marks the real team of every bye match as winner and copies
// it into its slot of round 1.
func advanceByes(sec *Section) {
	if len(sec.Rounds) < 2 {
		return
	}
	for m := range sec.Rounds[0].Matches {
		match := &sec.Rounds[0].Matches[m]
		a, b := &match.Teams[0], &match.Teams[1]
		var adv *Team
		switch {
		case a.Bye && !b.Bye:
			adv = b
		case b.Bye && !a.Bye:
			adv = a
		default:
			continue
		}
		adv.Winner = true
		_, parent, top := Parent(0, m)
		next := &sec.Rounds[1].Matches[parent]
		slot := 1
		if top {
			slot = 0
		}
		next.Teams[slot] = Team{Name: adv.Name, Seed: adv.Seed}
	}
}

// seedOrder returns the seed number placed in each round-0 slot for a
// field of n teams padded to the next power of two. Seeds greater than n
// denote byes.
func seedOrder(n int, s Seeding) ([]int, error) {
	size := 1
	for size < n {
		size *= 2
	}

	switch s {
	case "", SeedingStandard:
		order := []int{1, 2}
		for len(order) < size {
			next := make([]int, 0, len(order)*2)
			sum := len(order)*2 + 1
			for _, seed := range order {
				next = append(next, seed, sum-seed)
			}
			order = next
		}
		return order, nil
	case SeedingSequential:
		order := make([]int, size)
		for i := range order {
			order[i] = i + 1
		}
		return order, nil
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown seeding %q (must be 'standard' or 'sequential')", s)
	}
}

// roundName names a round by how many matches it holds.
func roundName(matches int) string {
	switch matches {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 4:
		return "Quarterfinals"
	default:
		return fmt.Sprintf("Round of %d", matches*2)
	}
}
