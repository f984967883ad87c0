// SPDX-License-Identifier: MIT
// Package backend: the dense-kernel contract.

package backend

import (
	"context"

	"gonum.org/v1/gonum/blas"
)

// Triangle selects which triangle of a symmetric matrix holds the data.
type Triangle byte

const (
	// Lower stores/reads the lower triangle.
	Lower Triangle = 'L'
	// Upper stores/reads the upper triangle.
	Upper Triangle = 'U'
)

// uplo converts to the gonum blas constant used by the reference kernels.
func (t Triangle) uplo() blas.Uplo {
	if t == Upper {
		return blas.Upper
	}

	return blas.Lower
}

// Kernel is the numerical backend contract. Every method operates in place
// on the caller's local block a, laid out per the descriptor d, and is
// collective over d.Comm: all active ranks must enter it with consistent
// arguments or the grid deadlocks. Numerical failures surface as *Error
// with Info > 0; contract violations as *Error with Info < 0.
//
// Workspace for Syev must be sized by SyevWorkspace before the call —
// passing a smaller workspace than prescribed is undefined behavior in the
// general backend contract (the reference kernel rejects it, a ScaLAPACK
// binding may not).
type Kernel interface {
	// Potrf overwrites the selected triangle of the symmetric
	// positive-definite matrix with its Cholesky factor.
	Potrf(ctx context.Context, a []float64, d Desc, uplo Triangle) error

	// Potri overwrites a Cholesky factor (as produced by Potrf with the
	// same uplo) with the corresponding triangle of the matrix inverse.
	Potri(ctx context.Context, a []float64, d Desc, uplo Triangle) error

	// SyevWorkspace returns the minimum float64 workspace length the
	// backend prescribes for Syev on a matrix described by d.
	SyevWorkspace(d Desc, vectors bool) int

	// Syev computes all eigenvalues of the symmetric matrix, ascending,
	// into eigs (length >= N). With vectors set, the matrix columns are
	// overwritten by the orthonormal eigenvectors; without it the
	// distributed content is left untouched by the reference kernel, but
	// the general contract considers it destroyed. All active ranks
	// receive identical eigenvalues.
	Syev(ctx context.Context, a []float64, d Desc, uplo Triangle, vectors bool, eigs, work []float64) error

	// Pocon estimates the reciprocal l1-norm condition number of a matrix
	// whose Cholesky factor is held in a; anorm is the l1 norm of the
	// matrix before factorization.
	Pocon(ctx context.Context, a []float64, d Desc, uplo Triangle, anorm float64) (float64, error)
}
