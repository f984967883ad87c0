// SPDX-License-Identifier: MIT
// Package distmat: sentinel error set (unified, consistent).
// All operations return these sentinels, wrapped with call-site context via
// fmt.Errorf("...: %w", ErrX); callers match with errors.Is. Numerical
// failures are NOT here — they surface as *backend.Error.

package distmat

import "errors"

var (
	// ErrNilGrid indicates a nil process grid passed to New.
	ErrNilGrid = errors.New("distmat: nil process grid")

	// ErrBadShape indicates non-positive global matrix dimensions.
	ErrBadShape = errors.New("distmat: matrix dimensions must be > 0")

	// ErrBadBlockSize indicates non-positive block sizes.
	ErrBadBlockSize = errors.New("distmat: block sizes must be > 0")

	// ErrState indicates an operation invoked outside its required source
	// state — a programming-contract violation, never coerced.
	ErrState = errors.New("distmat: operation not permitted in current state")

	// ErrProperty indicates an operation requiring a structural property
	// (symmetry) invoked on a matrix not tagged with it.
	ErrProperty = errors.New("distmat: operation requires a different matrix property")

	// ErrNotSquare indicates a square-only operation on a rectangular matrix.
	ErrNotSquare = errors.New("distmat: matrix is not square")

	// ErrNilSerial indicates the root passed no serial matrix to Assign.
	ErrNilSerial = errors.New("distmat: nil serial matrix on root")

	// ErrShapeMismatch indicates a serial matrix whose shape differs from
	// the distributed matrix it is assigned to.
	ErrShapeMismatch = errors.New("distmat: serial matrix shape mismatch")
)
