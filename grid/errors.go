// SPDX-License-Identifier: MIT
// Package grid: sentinel error set. All are configuration errors raised at
// construction, fatal to the caller's setup, never retried.

package grid

import "errors"

var (
	// ErrBadDims indicates a requested grid dimension that is not >= 1.
	ErrBadDims = errors.New("grid: process grid dimensions must be >= 1")

	// ErrGridTooLarge indicates rows*cols exceeding the pool size.
	ErrGridTooLarge = errors.New("grid: process grid larger than process pool")

	// ErrBadBlock indicates a non-positive matrix dimension or block size
	// passed to the heuristic constructor.
	ErrBadBlock = errors.New("grid: matrix dimensions and block sizes must be >= 1")

	// ErrNilWorld indicates a nil pool communicator.
	ErrNilWorld = errors.New("grid: nil world communicator")
)
