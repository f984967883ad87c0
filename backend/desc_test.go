package backend_test

import (
	"testing"

	"github.com/katalvlaran/gridla/backend"
)

// TestNumLocal_Partition verifies that local extents over all coordinates
// sum to the global extent, for a sweep of dimension/block/grid combinations.
func TestNumLocal_Partition(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9, 10, 17, 64} {
		for _, nb := range []int{1, 2, 3, 4, 7} {
			for _, np := range []int{1, 2, 3, 5} {
				total := 0
				for coord := 0; coord < np; coord++ {
					local := backend.NumLocal(n, nb, coord, 0, np)
					if local < 0 {
						t.Fatalf("NumLocal(%d,%d,%d,0,%d) = %d < 0", n, nb, coord, np, local)
					}
					total += local
				}
				if total != n {
					t.Errorf("n=%d nb=%d np=%d: extents sum to %d", n, nb, np, total)
				}
			}
		}
	}
}

// TestIndexMapping_Bijection verifies that global -> (owner, local) ->
// global reproduces every coordinate, and that every local slot is hit
// exactly once, across matrix shapes, block sizes and grid shapes.
func TestIndexMapping_Bijection(t *testing.T) {
	shapes := []struct{ m, n, mb, nb, p, q int }{
		{9, 9, 4, 4, 2, 2},
		{10, 7, 3, 2, 2, 3},
		{5, 5, 1, 1, 2, 2},
		{12, 4, 2, 4, 3, 1},
		{6, 11, 6, 11, 1, 1},
		{8, 8, 3, 3, 3, 3},
	}
	for _, s := range shapes {
		// One descriptor per grid coordinate, no communicator needed for
		// pure index math.
		hits := make(map[[3]int]int) // (rank, localRow, localCol) -> count
		for i := 0; i < s.m; i++ {
			for j := 0; j < s.n; j++ {
				d := backend.NewDesc(s.m, s.n, s.mb, s.nb, s.p, s.q, 0, 0, nil)
				pr, pc := d.OwnerRow(i), d.OwnerCol(j)
				if pr < 0 || pr >= s.p || pc < 0 || pc >= s.q {
					t.Fatalf("%+v: owner of (%d,%d) = (%d,%d) outside grid", s, i, j, pr, pc)
				}
				lr, lc := d.LocalRow(i), d.LocalCol(j)
				hits[[3]int{pr*s.q + pc, lr, lc}]++

				// Round trip through the owner's view.
				od := backend.NewDesc(s.m, s.n, s.mb, s.nb, s.p, s.q, pr, pc, nil)
				if gi, gj := od.GlobalRow(lr), od.GlobalCol(lc); gi != i || gj != j {
					t.Fatalf("%+v: (%d,%d) -> local (%d,%d) on (%d,%d) -> global (%d,%d)",
						s, i, j, lr, lc, pr, pc, gi, gj)
				}
				if !od.Mine(i, j) {
					t.Fatalf("%+v: owner (%d,%d) disowns (%d,%d)", s, pr, pc, i, j)
				}
			}
		}
		// Exactly one global element per (process, local offset) pair.
		for k, c := range hits {
			if c != 1 {
				t.Errorf("%+v: slot %v hit %d times", s, k, c)
			}
		}
		if len(hits) != s.m*s.n {
			t.Errorf("%+v: %d distinct slots; want %d", s, len(hits), s.m*s.n)
		}
	}
}

// TestLocalExtents_MatchMapping cross-checks NumLocal against the count of
// global indices mapped to each coordinate.
func TestLocalExtents_MatchMapping(t *testing.T) {
	const n, nb, np = 23, 4, 3
	counts := make([]int, np)
	for g := 0; g < n; g++ {
		counts[backend.Owner(g, nb, 0, np)]++
	}
	for coord := 0; coord < np; coord++ {
		if got := backend.NumLocal(n, nb, coord, 0, np); got != counts[coord] {
			t.Errorf("coord %d: NumLocal = %d; mapping count = %d", coord, got, counts[coord])
		}
	}
}

func TestDesc_InactiveRank(t *testing.T) {
	d := backend.NewDesc(10, 10, 2, 2, 2, 2, -1, -1, nil)
	if d.LocalRows() != 0 || d.LocalCols() != 0 {
		t.Errorf("inactive extents = (%d,%d); want (0,0)", d.LocalRows(), d.LocalCols())
	}
	if d.Mine(0, 0) {
		t.Error("inactive rank claims ownership")
	}
	if d.LLD != 1 {
		t.Errorf("LLD = %d; want 1 (floored)", d.LLD)
	}
}
