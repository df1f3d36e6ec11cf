package bracket

import (
	"fmt"
	"strings"
	"unicode"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// maxTeamsPerMatch is the number of participant slots in a match.
const maxTeamsPerMatch = 2

// ValidateShape checks that counts describes a strict binary reduction:
// round 0 has at least one match and every later round has exactly half
// the matches of the round before it. A round that feeds a later round
// must therefore have an even count. The final round may have any
// positive count.
func ValidateShape(counts []int) error {
	if len(counts) == 0 {
		return apperr.New(apperr.ErrCodeShapeMismatch, "bracket has no rounds")
	}
	if counts[0] < 1 {
		return apperr.New(apperr.ErrCodeShapeMismatch, "round 0 has no matches")
	}
	for r := 1; r < len(counts); r++ {
		prev := counts[r-1]
		if prev%2 != 0 {
			return apperr.New(apperr.ErrCodeShapeMismatch,
				"round %d has %d matches and cannot feed round %d (odd count)", r-1, prev, r)
		}
		if want := prev / 2; counts[r] != want {
			return apperr.New(apperr.ErrCodeShapeMismatch,
				"round %d has %d matches, want %d (half of round %d)", r, counts[r], want, r-1)
		}
	}
	return nil
}

// ValidateSection validates a single section.
// Binary sections must pass [ValidateShape]; linear sections only need a
// valid title. Errors keep their code and gain the section title as context.
func ValidateSection(s *Section) error {
	if err := apperr.ValidateTitle(s.Title); err != nil {
		return err
	}
	switch s.Mode {
	case "", ModeBinary:
		if err := ValidateShape(s.Counts()); err != nil {
			return apperr.New(apperr.GetCode(err), "section %q: %s", s.Title, apperr.UserMessage(err))
		}
	case ModeLinear:
	default:
		return apperr.New(apperr.ErrCodeInvalidMode, "section %q has unknown mode %q (must be 'binary' or 'linear')", s.Title, s.Mode)
	}

	for r, round := range s.Rounds {
		if round.BestOf < 0 {
			return apperr.New(apperr.ErrCodeInvalidInput, "section %q round %d: best_of cannot be negative", s.Title, r)
		}
		for m, match := range round.Matches {
			if len(match.Teams) > maxTeamsPerMatch {
				return apperr.New(apperr.ErrCodeInvalidInput,
					"section %q round %d match %d has %d teams (max %d)", s.Title, r, m, len(match.Teams), maxTeamsPerMatch)
			}
		}
	}
	return nil
}

// Validate checks every section of d and that match IDs are unique across
// the document. It never mutates d.
func Validate(d *Document) error {
	if d.Title != "" {
		if err := apperr.ValidateTitle(d.Title); err != nil {
			return err
		}
	}
	if len(d.Sections) == 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "bracket has no sections")
	}

	titles := make(map[string]struct{}, len(d.Sections))
	ids := make(map[string]string)
	for i := range d.Sections {
		s := &d.Sections[i]
		if err := ValidateSection(s); err != nil {
			return err
		}
		key := strings.ToLower(s.Title)
		if _, dup := titles[key]; dup {
			return apperr.New(apperr.ErrCodeInvalidInput, "duplicate section title %q", s.Title)
		}
		titles[key] = struct{}{}

		for _, round := range s.Rounds {
			for _, match := range round.Matches {
				if match.ID == "" {
					continue
				}
				if err := apperr.ValidateMatchID(match.ID); err != nil {
					return err
				}
				if other, dup := ids[match.ID]; dup {
					return apperr.New(apperr.ErrCodeInvalidInput, "duplicate match id %q (sections %q and %q)", match.ID, other, s.Title)
				}
				ids[match.ID] = s.Title
			}
		}
	}
	return nil
}

// Normalize fills missing identifiers and names in place:
//   - empty section modes become [ModeBinary]
//   - empty round IDs become "<section-key>-r<N>"
//   - empty match IDs become "<section-key>-r<N>-m<M>"
//
// Section keys come from [SectionKeys]. A generated match ID that equals an
// ID already present in the document gets a "-2", "-3", ... suffix, so
// Normalize never introduces a duplicate. Generated IDs are deterministic
// so that cache keys and SVG element ids are stable across runs.
func Normalize(d *Document) {
	taken := make(map[string]bool)
	for _, s := range d.Sections {
		for _, round := range s.Rounds {
			for _, m := range round.Matches {
				if m.ID != "" {
					taken[m.ID] = true
				}
			}
		}
	}

	titles := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		titles[i] = s.Title
	}
	keys := SectionKeys(titles)

	for i := range d.Sections {
		s := &d.Sections[i]
		if s.Mode == "" {
			s.Mode = ModeBinary
		}
		for r := range s.Rounds {
			round := &s.Rounds[r]
			if round.ID == "" {
				round.ID = fmt.Sprintf("%s-r%d", keys[i], r+1)
			}
			for m := range round.Matches {
				if round.Matches[m].ID == "" {
					round.Matches[m].ID = claim(taken, fmt.Sprintf("%s-r%d-m%d", keys[i], r+1, m+1))
				}
			}
		}
	}
}

// SectionKeys returns one identifier fragment per title, unique within the
// list. Keys are the [Slug] of the title ("s<N>" when the slug is empty);
// a repeated key gets a "-2", "-3", ... suffix in document order. Both
// [Normalize] and the SVG sink use it, so element ids never clash.
func SectionKeys(titles []string) []string {
	taken := make(map[string]bool, len(titles))
	keys := make([]string, len(titles))
	for i, title := range titles {
		base := Slug(title)
		if base == "" {
			base = fmt.Sprintf("s%d", i+1)
		}
		keys[i] = claim(taken, base)
	}
	return keys
}

// claim returns base, or base with the smallest free numeric suffix, and
// marks the result as taken.
func claim(taken map[string]bool, base string) string {
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = true
	return id
}

// Slug converts a title into a lowercase identifier fragment,
// e.g. "Upper Bracket" -> "upper-bracket".
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
