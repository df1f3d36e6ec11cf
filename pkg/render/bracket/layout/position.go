package layout

import (
	"slices"

	"github.com/matzehuels/bracketview/pkg/bracket"
	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

// DefaultRowHeight is the vertical distance between consecutive round-0
// matches.
const DefaultRowHeight = 120.0

type posKey struct{ round, match int }

// Positioner computes and memoizes match positions for one binary section.
// It is not safe for concurrent use; create one per section. Independent
// Positioners can be used from different goroutines.
type Positioner struct {
	counts    []int
	rowHeight float64
	memo      map[posKey]float64
}

// NewPositioner validates counts with [bracket.ValidateShape] and returns a
// Positioner with an empty memo. A non-positive rowHeight selects
// [DefaultRowHeight].
func NewPositioner(counts []int, rowHeight float64) (*Positioner, error) {
	if err := bracket.ValidateShape(counts); err != nil {
		return nil, err
	}
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	return &Positioner{
		counts:    slices.Clone(counts),
		rowHeight: rowHeight,
		memo:      make(map[posKey]float64),
	}, nil
}

// Rounds returns the number of rounds.
func (p *Positioner) Rounds() int { return len(p.counts) }

// Count returns the number of matches in round r, or 0 if r is out of range.
func (p *Positioner) Count(r int) int {
	if r < 0 || r >= len(p.counts) {
		return 0
	}
	return p.counts[r]
}

// RowHeight returns the round-0 grid spacing.
func (p *Positioner) RowHeight() float64 { return p.rowHeight }

// Cached returns the number of memoized positions.
func (p *Positioner) Cached() int { return len(p.memo) }

// Matches reports whether the Positioner was built for counts.
func (p *Positioner) Matches(counts []int) bool { return slices.Equal(p.counts, counts) }

// Position returns the vertical position of match of round.
func (p *Positioner) Position(round, match int) (float64, error) {
	if err := p.check(round, match); err != nil {
		return 0, err
	}
	return p.position(round, match), nil
}

// position assumes the key is in range. Feeders of an in-range key are in
// range because the shape was validated.
func (p *Positioner) position(round, match int) float64 {
	k := posKey{round, match}
	if v, ok := p.memo[k]; ok {
		return v
	}
	var v float64
	if round == 0 {
		v = float64(match) * p.rowHeight
	} else {
		v = (p.position(round-1, 2*match) + p.position(round-1, 2*match+1)) / 2
	}
	p.memo[k] = v
	return v
}

// Connector returns the length of the vertical link owned by the top
// sibling (even match) of a non-final round:
//
//	Position(round, match+1) - Position(round, match)
func (p *Positioner) Connector(round, match int) (float64, error) {
	if err := p.check(round, match); err != nil {
		return 0, err
	}
	if round == len(p.counts)-1 {
		return 0, apperr.New(apperr.ErrCodeInvalidIndex, "round %d is the final round and feeds no match", round)
	}
	if match%2 != 0 {
		return 0, apperr.New(apperr.ErrCodeInvalidIndex, "match %d of round %d is a bottom sibling and owns no link", match, round)
	}
	return p.position(round, match+1) - p.position(round, match), nil
}

// Fill computes every position bottom-up without recursion: round 0 from
// the grid, then each round from the one before it. It does not touch the
// memo.
func (p *Positioner) Fill() [][]float64 {
	out := make([][]float64, len(p.counts))
	for r, n := range p.counts {
		row := make([]float64, n)
		for i := range row {
			if r == 0 {
				row[i] = float64(i) * p.rowHeight
			} else {
				row[i] = (out[r-1][2*i] + out[r-1][2*i+1]) / 2
			}
		}
		out[r] = row
	}
	return out
}

func (p *Positioner) check(round, match int) error {
	if round < 0 || round >= len(p.counts) {
		return apperr.New(apperr.ErrCodeInvalidIndex, "round %d out of range [0, %d)", round, len(p.counts))
	}
	if match < 0 || match >= p.counts[round] {
		return apperr.New(apperr.ErrCodeInvalidIndex, "match %d out of range [0, %d) in round %d", match, p.counts[round], round)
	}
	return nil
}
