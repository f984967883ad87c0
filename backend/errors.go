// SPDX-License-Identifier: MIT
// Package backend: typed kernel failure.

package backend

import "fmt"

// Error is the typed failure a Kernel reports. It mirrors the LAPACK info
// convention: Info > 0 is a numerical failure identified at position Info
// (1-based, e.g. the order of the first non-positive-definite leading
// submatrix), Info < 0 marks the -Info-th call argument as illegal.
// Numerical failures are recoverable by the caller (retry with a
// regularized matrix); illegal arguments are programming errors.
type Error struct {
	Op   string // kernel operation, e.g. "potrf"
	Info int    // LAPACK-style status, never zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Info < 0 {
		return fmt.Sprintf("backend: %s: illegal value of argument %d", e.Op, -e.Info)
	}

	return fmt.Sprintf("backend: %s: numerical failure at position %d", e.Op, e.Info)
}

// Numerical reports whether the failure is numerical (recoverable by the
// caller) rather than an illegal-argument contract violation.
func (e *Error) Numerical() bool { return e.Info > 0 }

// illegalArg builds the contract-violation variant.
func illegalArg(op string, pos int) *Error {
	return &Error{Op: op, Info: -pos}
}
