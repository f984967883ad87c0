package grid_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridla/comm"
	"github.com/katalvlaran/gridla/grid"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// TestNew_ActivePartition verifies that exactly the first rows*cols ranks
// are active, with row-major coordinates, and that the root bridge joins
// rank 0 with the leftover ranks only.
func TestNew_ActivePartition(t *testing.T) {
	cases := []struct {
		name       string
		np, p, q   int
		wantBridge bool
	}{
		{"ExactFit2x2", 4, 2, 2, false},
		{"OneLeftOver2x2", 5, 2, 2, true},
		{"Row1x3", 5, 1, 3, true},
		{"Single", 3, 1, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := comm.RunLocal(tc.np, func(c comm.Communicator) error {
				g, err := grid.New(c, tc.p, tc.q)
				if err != nil {
					return err
				}
				rank := c.Rank()
				wantActive := rank < tc.p*tc.q
				if g.Active() != wantActive {
					t.Errorf("rank %d: Active() = %v; want %v", rank, g.Active(), wantActive)
				}
				if wantActive {
					if g.MyRow() != rank/tc.q || g.MyCol() != rank%tc.q {
						t.Errorf("rank %d: coord (%d,%d); want (%d,%d)",
							rank, g.MyRow(), g.MyCol(), rank/tc.q, rank%tc.q)
					}
					if g.ActiveComm() == nil {
						t.Errorf("rank %d: active rank has nil grid context", rank)
					}
					if g.RowLine() == nil || g.ColLine() == nil {
						t.Errorf("rank %d: active rank missing line communicators", rank)
					}
				} else {
					if g.MyRow() != -1 || g.MyCol() != -1 {
						t.Errorf("rank %d: inactive coord (%d,%d); want (-1,-1)", rank, g.MyRow(), g.MyCol())
					}
					if g.ActiveComm() != nil {
						t.Errorf("rank %d: inactive rank holds grid context", rank)
					}
				}
				inBridge := tc.wantBridge && (rank == 0 || !wantActive)
				if (g.RootBridge() != nil) != inBridge {
					t.Errorf("rank %d: RootBridge() present = %v; want %v",
						rank, g.RootBridge() != nil, inBridge)
				}

				return nil
			})
			require.NoError(t, err)
		})
	}
}

// TestBcastToInactive verifies that a result produced on the grid root
// reaches ranks excluded from the compute grid.
func TestBcastToInactive(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(6, func(c comm.Communicator) error {
		g, err := grid.New(c, 2, 2)
		if err != nil {
			return err
		}
		buf := make([]float64, 3)
		if c.Rank() == 0 {
			copy(buf, []float64{2.5, -1, 4})
		}
		if err := g.BcastToInactive(ctx, buf); err != nil {
			return err
		}
		if c.Rank() == 0 || !g.Active() {
			for i, want := range []float64{2.5, -1, 4} {
				if buf[i] != want {
					t.Errorf("rank %d: buf[%d] = %v; want %v", c.Rank(), i, buf[i], want)
				}
			}
		}

		return nil
	})
	require.NoError(t, err)
}

// TestLineCommunicators verifies row/column line membership by summing rank
// coordinates along each line of a 2x3 grid.
func TestLineCommunicators(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(6, func(c comm.Communicator) error {
		g, err := grid.New(c, 2, 3)
		if err != nil {
			return err
		}
		// Sum of grid columns along a row line is 0+1+2 = 3 on every member.
		buf := []float64{float64(g.MyCol())}
		if err := g.RowLine().AllReduce(ctx, buf, comm.OpSum); err != nil {
			return err
		}
		if buf[0] != 3 {
			t.Errorf("rank %d: row-line col sum = %v; want 3", c.Rank(), buf[0])
		}
		// Sum of grid rows along a column line is 0+1 = 1.
		buf[0] = float64(g.MyRow())
		if err := g.ColLine().AllReduce(ctx, buf, comm.OpSum); err != nil {
			return err
		}
		if buf[0] != 1 {
			t.Errorf("rank %d: col-line row sum = %v; want 1", c.Rank(), buf[0])
		}

		return nil
	})
	require.NoError(t, err)
}

func TestNew_ConfigurationErrors(t *testing.T) {
	err := comm.RunLocal(2, func(c comm.Communicator) error {
		if _, err := grid.New(c, 2, 2); !errors.Is(err, grid.ErrGridTooLarge) {
			t.Errorf("New(2,2) on 2 ranks error = %v; want ErrGridTooLarge", err)
		}
		if _, err := grid.New(c, 0, 1); !errors.Is(err, grid.ErrBadDims) {
			t.Errorf("New(0,1) error = %v; want ErrBadDims", err)
		}

		return nil
	})
	require.NoError(t, err)

	_, err = grid.New(nil, 1, 1)
	require.ErrorIs(t, err, grid.ErrNilWorld)
}

// TestNewForMatrix_Heuristic pins the documented case: M=100, N=50,
// MB=NB=10 over 8 ranks gives usable = min(10*5, 8) = 8 and a shape whose
// ratio approximates 100/50 = 2.
func TestNewForMatrix_Heuristic(t *testing.T) {
	err := comm.RunLocal(8, func(c comm.Communicator) error {
		g, err := grid.NewForMatrix(c, 100, 50, 10, 10)
		if err != nil {
			return err
		}
		if g.Rows()*g.Cols() > 8 {
			t.Errorf("shape %dx%d exceeds pool", g.Rows(), g.Cols())
		}
		if g.Rows() != 4 || g.Cols() != 2 {
			t.Errorf("shape = %dx%d; want 4x2", g.Rows(), g.Cols())
		}

		return nil
	})
	require.NoError(t, err)
}

func TestNewForMatrix_MoreRanksThanBlocks(t *testing.T) {
	err := comm.RunLocal(7, func(c comm.Communicator) error {
		// A 4x4 matrix in 2x2 blocks has 4 blocks; only 4 ranks are usable.
		g, err := grid.NewForMatrix(c, 4, 4, 2, 2)
		if err != nil {
			return err
		}
		if got := g.Rows() * g.Cols(); got > 4 {
			t.Errorf("active ranks = %d; want <= 4 (block count)", got)
		}
		if c.Rank() >= g.Rows()*g.Cols() && g.Active() {
			t.Errorf("rank %d beyond grid is active", c.Rank())
		}

		return nil
	})
	require.NoError(t, err)
}

func TestNewForMatrix_BadArgs(t *testing.T) {
	err := comm.RunLocal(1, func(c comm.Communicator) error {
		if _, err := grid.NewForMatrix(c, 10, 10, 0, 2); !errors.Is(err, grid.ErrBadBlock) {
			t.Errorf("NewForMatrix(mb=0) error = %v; want ErrBadBlock", err)
		}

		return nil
	})
	require.NoError(t, err)
}
