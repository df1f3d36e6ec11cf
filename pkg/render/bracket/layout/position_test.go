package layout

import (
	"sync"
	"testing"

	apperr "github.com/matzehuels/bracketview/pkg/errors"
)

func mustPositioner(t *testing.T, counts []int, rowHeight float64) *Positioner {
	t.Helper()
	p, err := NewPositioner(counts, rowHeight)
	if err != nil {
		t.Fatalf("NewPositioner(%v) error = %v", counts, err)
	}
	return p
}

func TestPositionExample(t *testing.T) {
	p := mustPositioner(t, []int{4, 2, 1}, 120)

	want := [][]float64{
		{0, 120, 240, 360},
		{60, 300},
		{180},
	}
	for r, row := range want {
		for i, w := range row {
			got, err := p.Position(r, i)
			if err != nil {
				t.Fatalf("Position(%d, %d) error = %v", r, i, err)
			}
			if got != w {
				t.Errorf("Position(%d, %d) = %v, want %v", r, i, got, w)
			}
		}
	}
}

func TestPositionBaseCase(t *testing.T) {
	for _, rh := range []float64{1, 50, 120, 33.5} {
		p := mustPositioner(t, []int{16, 8, 4, 2, 1}, rh)
		for i := 0; i < 16; i++ {
			got, _ := p.Position(0, i)
			if want := float64(i) * rh; got != want {
				t.Errorf("rowHeight %v: Position(0, %d) = %v, want %v", rh, i, got, want)
			}
		}
	}
}

func TestPositionMidpoint(t *testing.T) {
	p := mustPositioner(t, []int{32, 16, 8, 4, 2, 1}, 120)
	for r := 1; r < p.Rounds(); r++ {
		for i := 0; i < p.Count(r); i++ {
			got, _ := p.Position(r, i)
			a, _ := p.Position(r-1, 2*i)
			b, _ := p.Position(r-1, 2*i+1)
			if want := (a + b) / 2; got != want {
				t.Errorf("Position(%d, %d) = %v, want mean of feeders %v", r, i, got, want)
			}
		}
	}
}

func TestPositionMemoized(t *testing.T) {
	p := mustPositioner(t, []int{8, 4, 2, 1}, 120)
	if p.Cached() != 0 {
		t.Fatalf("fresh positioner has %d cached entries", p.Cached())
	}

	first, _ := p.Position(3, 0)
	// The final depends on every match of the tree: 8 + 4 + 2 + 1.
	if got := p.Cached(); got != 15 {
		t.Errorf("Cached() after final = %d, want 15", got)
	}

	second, _ := p.Position(3, 0)
	if first != second {
		t.Errorf("Position not idempotent: %v then %v", first, second)
	}
	if got := p.Cached(); got != 15 {
		t.Errorf("Cached() grew on repeat call: %d", got)
	}
}

func TestPositionInvalidIndex(t *testing.T) {
	p := mustPositioner(t, []int{4, 2, 1}, 120)

	keys := [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 4}, {1, 2}, {2, 1}}
	for _, k := range keys {
		if _, err := p.Position(k[0], k[1]); !apperr.Is(err, apperr.ErrCodeInvalidIndex) {
			t.Errorf("Position(%d, %d) = %v, want INVALID_INDEX", k[0], k[1], err)
		}
	}
	if p.Cached() != 0 {
		t.Errorf("invalid keys should not populate the memo, got %d entries", p.Cached())
	}
}

func TestNewPositionerShapeMismatch(t *testing.T) {
	for _, counts := range [][]int{nil, {0}, {4, 3}, {3, 1}, {8, 2}} {
		if _, err := NewPositioner(counts, 120); !apperr.Is(err, apperr.ErrCodeShapeMismatch) {
			t.Errorf("NewPositioner(%v) = %v, want SHAPE_MISMATCH", counts, err)
		}
	}
}

func TestNewPositionerDefaultRowHeight(t *testing.T) {
	p := mustPositioner(t, []int{2, 1}, 0)
	if p.RowHeight() != DefaultRowHeight {
		t.Errorf("RowHeight() = %v, want %v", p.RowHeight(), DefaultRowHeight)
	}
}

func TestNewPositionerCopiesCounts(t *testing.T) {
	counts := []int{2, 1}
	p := mustPositioner(t, counts, 120)
	counts[0] = 99
	if p.Count(0) != 2 {
		t.Errorf("positioner shares caller's slice: Count(0) = %d", p.Count(0))
	}
}

func TestFillMatchesPosition(t *testing.T) {
	p := mustPositioner(t, []int{16, 8, 4, 2, 1}, 97)
	all := p.Fill()
	if len(all) != 5 {
		t.Fatalf("Fill() returned %d rounds, want 5", len(all))
	}
	if p.Cached() != 0 {
		t.Errorf("Fill() should not touch the memo")
	}
	for r, row := range all {
		if len(row) != p.Count(r) {
			t.Fatalf("Fill() round %d has %d entries, want %d", r, len(row), p.Count(r))
		}
		for i, v := range row {
			got, _ := p.Position(r, i)
			if got != v {
				t.Errorf("Fill()[%d][%d] = %v, Position = %v", r, i, v, got)
			}
		}
	}
}

func TestConnector(t *testing.T) {
	p := mustPositioner(t, []int{4, 2, 1}, 120)

	tests := []struct {
		round, match int
		want         float64
	}{
		{0, 0, 120},
		{0, 2, 120},
		{1, 0, 240},
	}
	for _, tt := range tests {
		got, err := p.Connector(tt.round, tt.match)
		if err != nil {
			t.Fatalf("Connector(%d, %d) error = %v", tt.round, tt.match, err)
		}
		if got != tt.want {
			t.Errorf("Connector(%d, %d) = %v, want %v", tt.round, tt.match, got, tt.want)
		}
		a, _ := p.Position(tt.round, tt.match)
		b, _ := p.Position(tt.round, tt.match+1)
		if got != b-a || got < 0 {
			t.Errorf("Connector(%d, %d) = %v, want non-negative %v", tt.round, tt.match, got, b-a)
		}
	}

	for _, k := range [][2]int{{0, 1}, {2, 0}, {0, 4}, {-1, 0}} {
		if _, err := p.Connector(k[0], k[1]); !apperr.Is(err, apperr.ErrCodeInvalidIndex) {
			t.Errorf("Connector(%d, %d) = %v, want INVALID_INDEX", k[0], k[1], err)
		}
	}
}

func TestIndependentPositioners(t *testing.T) {
	shapes := [][]int{
		{4, 2, 1},
		{2, 1},
		{8, 4, 2, 1},
		{16, 8},
	}
	rowHeights := []float64{120, 10, 55, 200}

	results := make([]float64, len(shapes))
	var wg sync.WaitGroup
	for i := range shapes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := NewPositioner(shapes[i], rowHeights[i])
			if err != nil {
				t.Errorf("NewPositioner(%v) error = %v", shapes[i], err)
				return
			}
			last := p.Rounds() - 1
			results[i], _ = p.Position(last, 0)
		}(i)
	}
	wg.Wait()

	// Top match of the last round sits at (2^last - 1) / 2 rows.
	want := []float64{180, 5, 192.5, 100}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("shape %v: top of last round = %v, want %v", shapes[i], results[i], want[i])
		}
	}
}
