// SPDX-License-Identifier: MIT
// Package backend: local reduction primitives for distributed norms.
//
// No single process holds a full matrix row or column, so norm computation
// is split: these primitives reduce the local block, and the caller
// combines the partial results across the grid's row/column lines.

package backend

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// AbsColSums returns the per-local-column sums of absolute values of the
// local block, length d.LocalCols(). Summed along a grid column line these
// become full matrix column sums (the l1-norm building block).
// Complexity: O(local rows * local cols).
func AbsColSums(a []float64, d Desc) []float64 {
	rows, cols := d.LocalRows(), d.LocalCols()
	sums := make([]float64, cols)
	for i := 0; i < rows; i++ {
		row := a[i*d.LLD : i*d.LLD+cols]
		for j, v := range row {
			sums[j] += math.Abs(v)
		}
	}

	return sums
}

// AbsRowSums returns the per-local-row sums of absolute values of the
// local block, length d.LocalRows(); the l∞-norm building block.
func AbsRowSums(a []float64, d Desc) []float64 {
	rows, cols := d.LocalRows(), d.LocalCols()
	sums := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := a[i*d.LLD : i*d.LLD+cols]
		s := 0.0
		for _, v := range row {
			s += math.Abs(v)
		}
		sums[i] = s
	}

	return sums
}

// SumSquares returns the sum of squares of the local block; summed across
// the whole grid it yields the squared Frobenius norm.
func SumSquares(a []float64, d Desc) float64 {
	rows, cols := d.LocalRows(), d.LocalCols()
	if cols == d.LLD {
		return floats.Dot(a[:rows*cols], a[:rows*cols])
	}
	s := 0.0
	for i := 0; i < rows; i++ {
		row := a[i*d.LLD : i*d.LLD+cols]
		s += floats.Dot(row, row)
	}

	return s
}
