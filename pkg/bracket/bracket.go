package bracket

import (
	"fmt"
	"strings"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// Mode selects how a section is laid out.
type Mode string

// Section layout modes.
const (
	ModeBinary Mode = "binary"
	ModeLinear Mode = "linear"
)

// placeholder is shown for a team slot that is not decided yet.
const placeholder = "TBD"

// Document is a complete bracket: a title and its sections in display order.
type Document struct {
	Title    string    `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" toml:"sections" yaml:"sections"`
}

// Section is a named collection of rounds, e.g. "Upper Bracket".
type Section struct {
	Title  string  `json:"title" toml:"title" yaml:"title"`
	Mode   Mode    `json:"mode,omitempty" toml:"mode,omitempty" yaml:"mode,omitempty"`
	Rounds []Round `json:"rounds" toml:"rounds" yaml:"rounds"`
}

// Round is one column of a bracket.
type Round struct {
	ID      string  `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Name    string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	BestOf  int     `json:"best_of,omitempty" toml:"best_of,omitempty" yaml:"best_of,omitempty"`
	Matches []Match `json:"matches" toml:"matches" yaml:"matches"`
}

// Match is a single pairing. Teams holds at most two entries; an empty
// slice means neither participant is known yet.
type Match struct {
	ID    string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Teams []Team `json:"teams,omitempty" toml:"teams,omitempty" yaml:"teams,omitempty"`
}

// Team is one participant slot of a match.
type Team struct {
	Name   string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Seed   int    `json:"seed,omitempty" toml:"seed,omitempty" yaml:"seed,omitempty"`
	Score  *int   `json:"score,omitempty" toml:"score,omitempty" yaml:"score,omitempty"`
	Winner bool   `json:"winner,omitempty" toml:"winner,omitempty" yaml:"winner,omitempty"`
	Bye    bool   `json:"bye,omitempty" toml:"bye,omitempty" yaml:"bye,omitempty"`
}

// =============================================================================
// Section
// =============================================================================

// IsBinary reports whether the section uses the binary-tree layout.
// An empty mode defaults to binary.
func (s *Section) IsBinary() bool { return s.Mode == "" || s.Mode == ModeBinary }

// IsLinear reports whether the section is rendered as a plain list.
func (s *Section) IsLinear() bool { return s.Mode == ModeLinear }

// Counts returns the number of matches per round.
func (s *Section) Counts() []int {
	counts := make([]int, len(s.Rounds))
	for i, r := range s.Rounds {
		counts[i] = len(r.Matches)
	}
	return counts
}

// MatchCount returns the total number of matches across all rounds.
func (s *Section) MatchCount() int {
	n := 0
	for _, r := range s.Rounds {
		n += len(r.Matches)
	}
	return n
}

// Match returns the match at (round, index).
func (s *Section) Match(round, index int) (*Match, error) {
	if round < 0 || round >= len(s.Rounds) {
		return nil, apperr.New(apperr.ErrCodeInvalidIndex, "round %d out of range [0, %d)", round, len(s.Rounds))
	}
	matches := s.Rounds[round].Matches
	if index < 0 || index >= len(matches) {
		return nil, apperr.New(apperr.ErrCodeInvalidIndex, "match %d out of range [0, %d) in round %d", index, len(matches), round)
	}
	return &matches[index], nil
}

// RoundLabel returns the display name of round i, falling back to
// "Round <i+1>".
func (s *Section) RoundLabel(i int) string {
	if i >= 0 && i < len(s.Rounds) && s.Rounds[i].Name != "" {
		return s.Rounds[i].Name
	}
	return fmt.Sprintf("Round %d", i+1)
}

// =============================================================================
// Document
// =============================================================================

// Section looks up a section by title (case-insensitive).
func (d *Document) Section(title string) (*Section, error) {
	for i := range d.Sections {
		if strings.EqualFold(d.Sections[i].Title, title) {
			return &d.Sections[i], nil
		}
	}
	return nil, apperr.New(apperr.ErrCodeSectionNotFound, "no section titled %q", title)
}

// MatchCount returns the total number of matches in the document.
func (d *Document) MatchCount() int {
	n := 0
	for i := range d.Sections {
		n += d.Sections[i].MatchCount()
	}
	return n
}

// =============================================================================
// Match & Team
// =============================================================================

// Slot returns team i of the match, or an empty placeholder team.
func (m *Match) Slot(i int) Team {
	if i >= 0 && i < len(m.Teams) {
		return m.Teams[i]
	}
	return Team{}
}

// Winner returns the team flagged as winner, if any.
func (m *Match) Winner() (Team, bool) {
	for _, t := range m.Teams {
		if t.Winner {
			return t, true
		}
	}
	return Team{}, false
}

// Label returns a one-line description such as "Alpha 2:1 Beta".
func (m *Match) Label() string {
	a, b := m.Slot(0), m.Slot(1)
	if a.Score != nil && b.Score != nil {
		return fmt.Sprintf("%s %d:%d %s", a.DisplayName(), *a.Score, *b.Score, b.DisplayName())
	}
	return a.DisplayName() + " vs " + b.DisplayName()
}

// DisplayName returns the team name, "BYE" for byes, or "TBD".
func (t Team) DisplayName() string {
	switch {
	case t.Bye:
		return "BYE"
	case t.Name != "":
		return t.Name
	default:
		return placeholder
	}
}

// ScoreText returns the score as text, or "-" when no score is recorded.
func (t Team) ScoreText() string {
	if t.Score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *t.Score)
}

// IntPtr returns a pointer to v. Useful for building scores in code.
func IntPtr(v int) *int { return &v }

// =============================================================================
// Feeder relation
// =============================================================================

// Feeders returns the two matches of round-1 that feed match index of round.
// ok is false for round 0, which has no feeders.
func Feeders(round, index int) (prevRound, top, bottom int, ok bool) {
	if round <= 0 {
		return 0, 0, 0, false
	}
	return round - 1, 2 * index, 2*index + 1, true
}

// Parent returns the match of round+1 that match index of round feeds,
// and whether index is the top (even) sibling.
func Parent(round, index int) (nextRound, parent int, top bool) {
	return round + 1, index / 2, index%2 == 0
}
