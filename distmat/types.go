// SPDX-License-Identifier: MIT
// Package distmat: domain types. Errors live in errors.go, options in
// options.go, per the global conventions.

package distmat

import (
	"context"

	"github.com/katalvlaran/gridla/comm"
)

// State records what the matrix content currently means. Distributed
// kernels overwrite content in place (a factor replaces the matrix, an
// inverse replaces the factor), so each operation is gated on the state
// its math requires.
type State int

const (
	// Unassigned: constructed, no content yet; only Assign is permitted.
	Unassigned State = iota
	// Assigned: general content in place; factorizations and norms apply.
	Assigned
	// CholeskyFactored: content is the in-place triangular factor.
	CholeskyFactored
	// Inverted: content is the in-place inverse. Terminal.
	Inverted
	// EigenvectorsComputed: columns hold eigenvectors. Terminal.
	EigenvectorsComputed
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case Unassigned:
		return "unassigned"
	case Assigned:
		return "assigned"
	case CholeskyFactored:
		return "cholesky-factored"
	case Inverted:
		return "inverted"
	case EigenvectorsComputed:
		return "eigenvectors-computed"
	default:
		return "unknown"
	}
}

// Property tags the structural shape of the content, used to gate
// operations that require symmetry and to record what a factorization
// left behind.
type Property int

const (
	// General: no structural assumption.
	General Property = iota
	// Symmetric: content is symmetric; required by Cholesky and Syev.
	Symmetric
	// LowerTriangular: only the lower triangle is meaningful.
	LowerTriangular
	// UpperTriangular: only the upper triangle is meaningful.
	UpperTriangular
)

// String returns the property name for diagnostics.
func (p Property) String() string {
	switch p {
	case General:
		return "general"
	case Symmetric:
		return "symmetric"
	case LowerTriangular:
		return "lower-triangular"
	case UpperTriangular:
		return "upper-triangular"
	default:
		return "unknown"
	}
}

// ProcessGrid is the capability surface a Matrix consumes from its grid:
// shape, this rank's coordinate and activity, and the communication
// contexts. *grid.Grid satisfies it. Narrowing to an interface keeps the
// matrix off the grid's internals and makes grid doubles trivial in tests.
type ProcessGrid interface {
	Rows() int
	Cols() int
	Size() int
	Rank() int
	MyRow() int
	MyCol() int
	Active() bool
	World() comm.Communicator
	ActiveComm() comm.Communicator
	RowLine() comm.Communicator
	ColLine() comm.Communicator
	BcastToInactive(ctx context.Context, buf []float64) error
}
