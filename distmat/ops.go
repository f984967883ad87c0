// SPDX-License-Identifier: MIT
// Package distmat: distributed operation orchestration.
//
// Every operation here follows the same SPMD shape:
//
//  1. gate on state/property/shape — identically on every rank, so a
//     contract violation fails everywhere without touching the network;
//  2. active ranks run the backend kernel, which leaves all of them
//     agreeing on a status;
//  3. the grid root fans status (and scalar/vector results) out to the
//     inactive ranks over the root bridge;
//  4. every rank applies the same state transition, or returns the same
//     typed error.
//
// Step 3 is what keeps an inactive rank's view of the matrix — its state
// and any returned values — indistinguishable from an active rank's.

package distmat

import (
	"context"
	"errors"

	"github.com/katalvlaran/gridla/backend"
)

// Cholesky overwrites the matrix with its in-place lower-triangular
// Cholesky factor. Requires state Assigned, property Symmetric and a
// square shape; the content is furthermore assumed positive definite by
// convention of use — violation surfaces as a numerical *backend.Error
// (Info > 0) with the content left unchanged.
// Transitions Assigned -> CholeskyFactored and re-tags the property
// LowerTriangular.
func (a *Matrix) Cholesky(ctx context.Context) error {
	if err := a.requireState("Cholesky", Assigned); err != nil {
		return err
	}
	if err := a.requireSquare("Cholesky"); err != nil {
		return err
	}
	if err := a.requireSymmetric("Cholesky"); err != nil {
		return err
	}
	if err := a.runKernel(ctx, "potrf", func() error {
		return a.kernel.Potrf(ctx, a.local, a.desc, backend.Lower)
	}); err != nil {
		return err
	}
	a.state = CholeskyFactored
	a.prop = LowerTriangular

	return nil
}

// Invert overwrites the Cholesky factor with the in-place inverse of the
// original matrix (lower triangle; the strict upper triangle keeps
// whatever the factorization left there). Requires state CholeskyFactored.
// Transitions CholeskyFactored -> Inverted, a terminal state.
func (a *Matrix) Invert(ctx context.Context) error {
	if err := a.requireState("Invert", CholeskyFactored); err != nil {
		return err
	}
	if err := a.runKernel(ctx, "potri", func() error {
		return a.kernel.Potri(ctx, a.local, a.desc, backend.Lower)
	}); err != nil {
		return err
	}
	a.state = Inverted
	a.prop = Symmetric

	return nil
}

// FactorizeAndInvert runs Cholesky then Invert in one call, the common
// path for callers who only want the inverse of an SPD matrix.
func (a *Matrix) FactorizeAndInvert(ctx context.Context) error {
	if err := a.Cholesky(ctx); err != nil {
		return err
	}

	return a.Invert(ctx)
}

// Eigenvalues computes all eigenvalues of the symmetric matrix, ascending
// (the backend's order, never re-sorted here), identical on every rank of
// the pool. Requires state Assigned, property Symmetric, square shape.
// The distributed content and the state are left unchanged.
func (a *Matrix) Eigenvalues(ctx context.Context) ([]float64, error) {
	return a.eigen(ctx, false)
}

// Eigenpairs computes all eigenvalues (as Eigenvalues) and overwrites the
// matrix columns with the corresponding orthonormal eigenvectors.
// Transitions Assigned -> EigenvectorsComputed, a terminal state.
func (a *Matrix) Eigenpairs(ctx context.Context) ([]float64, error) {
	return a.eigen(ctx, true)
}

func (a *Matrix) eigen(ctx context.Context, vectors bool) ([]float64, error) {
	op := "Eigenvalues"
	if vectors {
		op = "Eigenpairs"
	}
	if err := a.requireState(op, Assigned); err != nil {
		return nil, err
	}
	if err := a.requireSquare(op); err != nil {
		return nil, err
	}
	if err := a.requireSymmetric(op); err != nil {
		return nil, err
	}

	eigs := make([]float64, a.n)
	if err := a.runKernel(ctx, "syev", func() error {
		// Workspace is sized by the backend's prescription before the
		// call; guessing instead is undefined behavior in the contract.
		work := make([]float64, a.kernel.SyevWorkspace(a.desc, vectors))

		return a.kernel.Syev(ctx, a.local, a.desc, backend.Lower, vectors, eigs, work)
	}); err != nil {
		return nil, err
	}
	// Fan the eigenvalues out so ranks outside the compute grid return
	// the same sequence as the ranks that computed it.
	if err := a.grid.BcastToInactive(ctx, eigs); err != nil {
		return nil, err
	}
	if vectors {
		a.state = EigenvectorsComputed
	}

	return eigs, nil
}

// ReciprocalConditionNumber estimates 1/κ₁ of the matrix from its Cholesky
// factor. anorm must be the l1 norm of the matrix measured before
// factorization (the content it refers to no longer exists afterwards).
// The reciprocal form cannot overflow for near-singular input. Requires
// state CholeskyFactored; read-only.
func (a *Matrix) ReciprocalConditionNumber(ctx context.Context, anorm float64) (float64, error) {
	if err := a.requireState("ReciprocalConditionNumber", CholeskyFactored); err != nil {
		return 0, err
	}

	out := make([]float64, 2) // status, rcond
	if a.grid.Active() {
		rcond, err := a.kernel.Pocon(ctx, a.local, a.desc, backend.Lower, anorm)
		var be *backend.Error
		switch {
		case err == nil:
			out[1] = rcond
		case errors.As(err, &be):
			out[0] = float64(be.Info)
		default:
			return 0, err // substrate failure, no structured recovery
		}
	}
	if err := a.grid.BcastToInactive(ctx, out); err != nil {
		return 0, err
	}
	if out[0] != 0 {
		return 0, &backend.Error{Op: "pocon", Info: int(out[0])}
	}

	return out[1], nil
}

// runKernel executes a collective kernel step on the active ranks and
// shares the outcome with the inactive ranks, so that every rank of the
// pool returns the same *backend.Error (or nil). Substrate errors pass
// through untouched: a broken collective aborts the run, it is not
// recovered (the in-process engine unblocks stranded peers through their
// contexts).
func (a *Matrix) runKernel(ctx context.Context, op string, run func() error) error {
	var kerr *backend.Error
	if a.grid.Active() {
		if err := run(); err != nil {
			if !errors.As(err, &kerr) {
				return err
			}
		}
	}
	status := make([]float64, 1)
	if kerr != nil {
		status[0] = float64(kerr.Info)
	}
	if err := a.grid.BcastToInactive(ctx, status); err != nil {
		return err
	}
	switch {
	case status[0] == 0:
		return nil
	case kerr != nil:
		return kerr
	default:
		// Inactive rank reconstructing the failure it was told about.
		return &backend.Error{Op: op, Info: int(status[0])}
	}
}
