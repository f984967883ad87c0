// SPDX-License-Identifier: MIT
// Package comm: sentinel error set.
// All substrate operations return these sentinels (possibly wrapped with
// call-site context via fmt.Errorf("...: %w", ErrX)); tests and callers
// match them with errors.Is.

package comm

import "errors"

var (
	// ErrRankOutOfRange indicates a source or destination rank outside
	// [0, Size()) of the communicator the call was made on.
	ErrRankOutOfRange = errors.New("comm: rank out of range")

	// ErrLengthMismatch indicates that a matched Send/Recv pair disagreed on
	// buffer length. The substrate transfers fixed-size buffers; both sides
	// must agree on the element count.
	ErrLengthMismatch = errors.New("comm: buffer length mismatch")

	// ErrBadTag indicates a negative message tag. Tags identify logically
	// distinct point-to-point exchanges and must be non-negative.
	ErrBadTag = errors.New("comm: tag must be non-negative")

	// ErrBadGroup indicates an invalid rank set passed to Group: empty,
	// containing duplicates, or not sorted ascending.
	ErrBadGroup = errors.New("comm: invalid group rank set")

	// ErrBadPoolSize indicates a non-positive rank count passed to RunLocal.
	ErrBadPoolSize = errors.New("comm: pool size must be > 0")
)
