package distmat_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/gridla/comm"
	"github.com/katalvlaran/gridla/dense"
	"github.com/katalvlaran/gridla/distmat"
	"github.com/katalvlaran/gridla/grid"
)

// testCtx bounds every collective so a broken schedule fails loudly
// instead of hanging the suite.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// serialFrom builds an r×c serial matrix from a generator.
func serialFrom(t *testing.T, r, c int, f func(i, j int) float64) *dense.Matrix {
	t.Helper()
	s, err := dense.New(r, c)
	if err != nil {
		t.Fatalf("dense.New(%d,%d): %v", r, c, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err := s.Set(i, j, f(i, j)); err != nil {
				t.Fatalf("Set(%d,%d): %v", i, j, err)
			}
		}
	}

	return s
}

// spdGen generates a symmetric positive-definite n×n matrix: strong
// diagonal dominance makes definiteness unconditional.
func spdGen(n int) func(i, j int) float64 {
	return func(i, j int) float64 {
		v := 1.0 / (1.0 + math.Abs(float64(i-j)))
		if i == j {
			v += float64(n)
		}

		return v
	}
}

// symGen generates a symmetric (not necessarily definite) matrix.
func symGen(i, j int) float64 {
	return math.Sin(float64(i*j + i + j))
}

// nilUnlessRoot materializes the serial matrix only on the pool root, the
// way callers of Assign are expected to.
func nilUnlessRoot(t *testing.T, c comm.Communicator, r, cols int, f func(i, j int) float64) *dense.Matrix {
	t.Helper()
	if c.Rank() != 0 {
		return nil
	}

	return serialFrom(t, r, cols, f)
}

// newAssigned builds a p×q grid over c, constructs an m×n matrix with the
// given options and assigns content from gen (held by the pool root only).
func newAssigned(t *testing.T, ctx context.Context, c comm.Communicator, p, q, m, n int,
	gen func(i, j int) float64, opts ...distmat.Option) (*distmat.Matrix, *grid.Grid) {
	t.Helper()
	g, err := grid.New(c, p, q)
	if err != nil {
		t.Fatalf("grid.New(%d,%d): %v", p, q, err)
	}
	a, err := distmat.New(g, m, n, opts...)
	if err != nil {
		t.Fatalf("distmat.New(%d,%d): %v", m, n, err)
	}
	var s *dense.Matrix
	if c.Rank() == 0 {
		s = serialFrom(t, m, n, gen)
	}
	if err := a.Assign(ctx, s); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	return a, g
}
