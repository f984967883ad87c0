// SPDX-License-Identifier: MIT
// Package distmat: distributed norms.
//
// No process holds a full matrix row or column, so each norm combines a
// local reduction of this process's block (package backend primitives)
// with cross-process reductions along the grid's communication lines:
//
//	l1   — sum partial column sums down each grid column, max across the row
//	l∞   — sum partial row sums across each grid row, max down the column
//	frob — sum local squares over the whole grid, square root
//
// All three are read-only, leave the state untouched, and return the same
// scalar on every rank of the pool (inactive ranks included, via the root
// bridge).

package distmat

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/gridla/backend"
	"github.com/katalvlaran/gridla/comm"
)

// L1Norm returns the l1 norm (maximum absolute column sum). Requires state
// Assigned: after a factorization the content no longer is the matrix the
// norm would describe.
func (a *Matrix) L1Norm(ctx context.Context) (float64, error) {
	return a.norm(ctx, "L1Norm", a.l1Local)
}

// LinfNorm returns the l∞ norm (maximum absolute row sum). Requires state
// Assigned.
func (a *Matrix) LinfNorm(ctx context.Context) (float64, error) {
	return a.norm(ctx, "LinfNorm", a.linfLocal)
}

// FrobeniusNorm returns the Frobenius norm. Requires state Assigned.
func (a *Matrix) FrobeniusNorm(ctx context.Context) (float64, error) {
	return a.norm(ctx, "FrobeniusNorm", a.frobLocal)
}

// norm gates, runs the active-rank reduction, and fans the scalar out.
func (a *Matrix) norm(ctx context.Context, op string, active func(context.Context) (float64, error)) (float64, error) {
	if a.state != Assigned {
		return 0, fmt.Errorf("%s: state is %s, requires %s: %w", op, a.state, Assigned, ErrState)
	}
	out := make([]float64, 1)
	if a.grid.Active() {
		v, err := active(ctx)
		if err != nil {
			return 0, err
		}
		out[0] = v
	}
	if err := a.grid.BcastToInactive(ctx, out); err != nil {
		return 0, err
	}

	return out[0], nil
}

// l1Local: partial column sums summed along this grid column, then the
// column maximum maxed across this grid row. Runs on active ranks.
func (a *Matrix) l1Local(ctx context.Context) (float64, error) {
	sums := backend.AbsColSums(a.local, a.desc)
	if len(sums) > 0 {
		if err := a.grid.ColLine().AllReduce(ctx, sums, comm.OpSum); err != nil {
			return 0, err
		}
	}
	peak := []float64{maxOf(sums)}
	if err := a.grid.RowLine().AllReduce(ctx, peak, comm.OpMax); err != nil {
		return 0, err
	}

	return peak[0], nil
}

// linfLocal mirrors l1Local with the roles of rows and columns swapped.
func (a *Matrix) linfLocal(ctx context.Context) (float64, error) {
	sums := backend.AbsRowSums(a.local, a.desc)
	if len(sums) > 0 {
		if err := a.grid.RowLine().AllReduce(ctx, sums, comm.OpSum); err != nil {
			return 0, err
		}
	}
	peak := []float64{maxOf(sums)}
	if err := a.grid.ColLine().AllReduce(ctx, peak, comm.OpMax); err != nil {
		return 0, err
	}

	return peak[0], nil
}

// frobLocal: global sum of squares, then the square root.
func (a *Matrix) frobLocal(ctx context.Context) (float64, error) {
	ss := []float64{backend.SumSquares(a.local, a.desc)}
	if err := a.grid.ActiveComm().AllReduce(ctx, ss, comm.OpSum); err != nil {
		return 0, err
	}

	return math.Sqrt(ss[0]), nil
}

// maxOf returns the maximum element, or 0 for an empty slice (a rank whose
// local extent is empty contributes the neutral element; norms are
// non-negative, so 0 is neutral under max).
func maxOf(v []float64) float64 {
	peak := 0.0
	for _, x := range v {
		if x > peak {
			peak = x
		}
	}

	return peak
}
