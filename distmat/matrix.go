// SPDX-License-Identifier: MIT
// Package distmat: Matrix construction, index queries and local access.

package distmat

import (
	"fmt"

	"github.com/katalvlaran/gridla/backend"
)

// Matrix is an M×N dense matrix block-cyclically distributed over a
// process grid. The local buffer holds exactly this process's blocks,
// row-major with stride desc.LLD; it is owned exclusively by this process
// and mutated only through distributed operations, never shared.
//
// A Matrix references its grid, it never owns it: many matrices may share
// one grid, and the grid must outlive them all.
type Matrix struct {
	m, n   int
	mb, nb int
	prop   Property
	state  State

	grid   ProcessGrid
	desc   backend.Desc
	kernel backend.Kernel

	local []float64
}

// New constructs an M×N matrix distributed over g, with no content yet
// (state Unassigned). Collective: every rank of g's pool must construct
// the matrix with identical arguments.
//
// Returns ErrNilGrid, ErrBadShape or ErrBadBlockSize on configuration
// errors, identically on every rank.
func New(g ProcessGrid, m, n int, opts ...Option) (*Matrix, error) {
	// Stage 1 (Validate).
	if g == nil {
		return nil, ErrNilGrid
	}
	if m < 1 || n < 1 {
		return nil, fmt.Errorf("New(%d, %d): %w", m, n, ErrBadShape)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.mb < 1 || cfg.nb < 1 {
		return nil, fmt.Errorf("New: block %dx%d: %w", cfg.mb, cfg.nb, ErrBadBlockSize)
	}

	// Stage 2 (Prepare): derive the descriptor once; it is immutable for
	// the matrix's lifetime, as are the local extents it encodes.
	desc := backend.NewDesc(m, n, cfg.mb, cfg.nb,
		g.Rows(), g.Cols(), g.MyRow(), g.MyCol(), g.ActiveComm())

	// Stage 3 (Finalize): allocate exactly the block-cyclic local extent.
	a := &Matrix{
		m: m, n: n, mb: cfg.mb, nb: cfg.nb,
		prop:   cfg.prop,
		state:  Unassigned,
		grid:   g,
		desc:   desc,
		kernel: cfg.kernel,
		local:  make([]float64, desc.LocalRows()*desc.LLD),
	}

	return a, nil
}

// M returns the number of global rows.
func (a *Matrix) M() int { return a.m }

// N returns the number of global columns.
func (a *Matrix) N() int { return a.n }

// BlockRows returns the row block size MB.
func (a *Matrix) BlockRows() int { return a.mb }

// BlockCols returns the column block size NB.
func (a *Matrix) BlockCols() int { return a.nb }

// LocalRows returns the number of rows stored on this process.
func (a *Matrix) LocalRows() int { return a.desc.LocalRows() }

// LocalCols returns the number of columns stored on this process.
func (a *Matrix) LocalCols() int { return a.desc.LocalCols() }

// State returns the current operation state.
func (a *Matrix) State() State { return a.state }

// Property returns the structural property tag.
func (a *Matrix) Property() Property { return a.prop }

// SetProperty re-tags the structural property. It changes no content; use
// it when the caller knows the content satisfies a stronger shape (e.g.
// symmetric by construction).
func (a *Matrix) SetProperty(p Property) { a.prop = p }

// Desc returns the distribution descriptor passed to backend kernels.
func (a *Matrix) Desc() backend.Desc { return a.desc }

// Grid returns the process grid the matrix is distributed over.
func (a *Matrix) Grid() ProcessGrid { return a.grid }

// IsLocal reports whether global element (i, j) is stored on this process.
func (a *Matrix) IsLocal(i, j int) bool { return a.desc.Mine(i, j) }

// GlobalRow maps a local row index to its global row. Panics on
// out-of-range input: local coordinates are producer-controlled, so a bad
// one is a programming error, not a recoverable condition.
func (a *Matrix) GlobalRow(lr int) int {
	if lr < 0 || lr >= a.desc.LocalRows() {
		panic(fmt.Sprintf("distmat: local row %d outside local extent %d", lr, a.desc.LocalRows()))
	}

	return a.desc.GlobalRow(lr)
}

// GlobalCol maps a local column index to its global column.
func (a *Matrix) GlobalCol(lc int) int {
	if lc < 0 || lc >= a.desc.LocalCols() {
		panic(fmt.Sprintf("distmat: local column %d outside local extent %d", lc, a.desc.LocalCols()))
	}

	return a.desc.GlobalCol(lc)
}

// LocalAt reads local element (lr, lc). Panics on out-of-range input.
func (a *Matrix) LocalAt(lr, lc int) float64 {
	a.checkLocal(lr, lc)

	return a.local[lr*a.desc.LLD+lc]
}

// SetLocalAt writes local element (lr, lc). Panics on out-of-range input.
func (a *Matrix) SetLocalAt(lr, lc int, v float64) {
	a.checkLocal(lr, lc)
	a.local[lr*a.desc.LLD+lc] = v
}

// checkLocal fails fast on local coordinates outside this process's block
// extent.
func (a *Matrix) checkLocal(lr, lc int) {
	if lr < 0 || lr >= a.desc.LocalRows() || lc < 0 || lc >= a.desc.LocalCols() {
		panic(fmt.Sprintf("distmat: local index (%d,%d) outside local extent %dx%d",
			lr, lc, a.desc.LocalRows(), a.desc.LocalCols()))
	}
}

// requireState gates an operation on its source state.
func (a *Matrix) requireState(op string, want State) error {
	if a.state != want {
		return fmt.Errorf("%s: state is %s, requires %s: %w", op, a.state, want, ErrState)
	}

	return nil
}

// requireSymmetric gates an operation on the Symmetric property tag.
func (a *Matrix) requireSymmetric(op string) error {
	if a.prop != Symmetric {
		return fmt.Errorf("%s: property is %s, requires %s: %w", op, a.prop, Symmetric, ErrProperty)
	}

	return nil
}

// requireSquare gates an operation on a square global shape.
func (a *Matrix) requireSquare(op string) error {
	if a.m != a.n {
		return fmt.Errorf("%s: shape %dx%d: %w", op, a.m, a.n, ErrNotSquare)
	}

	return nil
}
