package backend_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridla/backend"
	"github.com/katalvlaran/gridla/comm"
	"github.com/katalvlaran/gridla/grid"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// descFor builds this rank's descriptor for an n×n matrix over g.
func descFor(g *grid.Grid, n, nb int) backend.Desc {
	return backend.NewDesc(n, n, nb, nb, g.Rows(), g.Cols(), g.MyRow(), g.MyCol(), g.ActiveComm())
}

// fillGlobal fills the local block from a global generator function.
func fillGlobal(a []float64, d backend.Desc, f func(i, j int) float64) {
	for lr := 0; lr < d.LocalRows(); lr++ {
		for lc := 0; lc < d.LocalCols(); lc++ {
			a[lr*d.LLD+lc] = f(d.GlobalRow(lr), d.GlobalCol(lc))
		}
	}
}

// TestPotrf_Identity factors the identity across a 2x2 grid; the factor of
// I is I, so the round trip also pins gather/scatter correctness.
func TestPotrf_Identity(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(4, func(c comm.Communicator) error {
		g, err := grid.New(c, 2, 2)
		if err != nil {
			return err
		}
		const n, nb = 9, 2
		d := descFor(g, n, nb)
		a := make([]float64, d.LocalRows()*d.LLD)
		eye := func(i, j int) float64 {
			if i == j {
				return 1
			}

			return 0
		}
		fillGlobal(a, d, eye)

		if err := (backend.Gonum{}).Potrf(ctx, a, d, backend.Lower); err != nil {
			return err
		}
		for lr := 0; lr < d.LocalRows(); lr++ {
			for lc := 0; lc < d.LocalCols(); lc++ {
				want := eye(d.GlobalRow(lr), d.GlobalCol(lc))
				if got := a[lr*d.LLD+lc]; got != want {
					t.Errorf("rank %d: local (%d,%d) = %v; want %v", c.Rank(), lr, lc, got, want)
				}
			}
		}

		return nil
	})
	require.NoError(t, err)
}

// TestPotrf_NotPositiveDefinite verifies that every active rank observes
// the same numerical failure and that local content is left unchanged.
func TestPotrf_NotPositiveDefinite(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(2, func(c comm.Communicator) error {
		g, err := grid.New(c, 2, 1)
		if err != nil {
			return err
		}
		const n, nb = 4, 2
		d := descFor(g, n, nb)
		a := make([]float64, d.LocalRows()*d.LLD)
		negEye := func(i, j int) float64 {
			if i == j {
				return -1
			}

			return 0
		}
		fillGlobal(a, d, negEye)
		before := append([]float64(nil), a...)

		err = (backend.Gonum{}).Potrf(ctx, a, d, backend.Lower)
		var be *backend.Error
		if !errors.As(err, &be) {
			t.Errorf("rank %d: error = %v; want *backend.Error", c.Rank(), err)

			return nil
		}
		if !be.Numerical() {
			t.Errorf("rank %d: Info = %d; want > 0", c.Rank(), be.Info)
		}
		for i := range a {
			if a[i] != before[i] {
				t.Errorf("rank %d: local content mutated on failure", c.Rank())

				break
			}
		}

		return nil
	})
	require.NoError(t, err)
}

// TestSyev_Diagonal solves a diagonal matrix whose eigenvalues are known;
// the backend must return them ascending on every rank.
func TestSyev_Diagonal(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(4, func(c comm.Communicator) error {
		g, err := grid.New(c, 2, 2)
		if err != nil {
			return err
		}
		const n, nb = 6, 2
		d := descFor(g, n, nb)
		a := make([]float64, d.LocalRows()*d.LLD)
		// Diagonal 6,5,4,3,2,1: eigenvalues 1..6 ascending.
		fillGlobal(a, d, func(i, j int) float64 {
			if i == j {
				return float64(n - i)
			}

			return 0
		})

		k := backend.Gonum{}
		work := make([]float64, k.SyevWorkspace(d, false))
		eigs := make([]float64, n)
		if err := k.Syev(ctx, a, d, backend.Lower, false, eigs, work); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if math.Abs(eigs[i]-float64(i+1)) > 1e-12 {
				t.Errorf("rank %d: eigs[%d] = %v; want %d", c.Rank(), i, eigs[i], i+1)
			}
		}

		return nil
	})
	require.NoError(t, err)
}

func TestSyevWorkspace_Minimum(t *testing.T) {
	d := backend.NewDesc(10, 10, 2, 2, 1, 1, 0, 0, nil)
	if got, want := (backend.Gonum{}).SyevWorkspace(d, true), 29; got != want {
		t.Errorf("SyevWorkspace = %d; want %d", got, want)
	}
}

// TestSyev_ShortWorkspace verifies the reference kernel rejects under-sized
// workspace instead of invoking undefined behavior.
func TestSyev_ShortWorkspace(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(1, func(c comm.Communicator) error {
		g, err := grid.New(c, 1, 1)
		if err != nil {
			return err
		}
		d := descFor(g, 4, 2)
		a := make([]float64, d.LocalRows()*d.LLD)
		eigs := make([]float64, 4)
		err = (backend.Gonum{}).Syev(ctx, a, d, backend.Lower, false, eigs, make([]float64, 3))
		var be *backend.Error
		if !errors.As(err, &be) || be.Numerical() {
			t.Errorf("error = %v; want illegal-argument *backend.Error", err)
		}

		return nil
	})
	require.NoError(t, err)
}
