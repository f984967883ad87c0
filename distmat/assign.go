// SPDX-License-Identifier: MIT
// Package distmat: scatter from / gather to the serial matrix boundary.
//
// Both operations move the full serial matrix through the grid root, so
// their cost is O(M*N) on the root regardless of grid size. They exist for
// debugging-scale I/O, not as a bulk ingestion path.

package distmat

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridla/backend"
	"github.com/katalvlaran/gridla/comm"
	"github.com/katalvlaran/gridla/dense"
)

// Tags for assignment traffic on the active communicator.
const (
	tagScatterBlock = comm.TagReserved + 32
	tagGatherBlock  = comm.TagReserved + 33
)

// Assign scatters a serial matrix held by the pool root (rank 0) into the
// distributed matrix, block by block per the cyclic mapping, and moves the
// state to Assigned. Collective over the whole pool; non-root ranks may
// pass nil. Valid in any state: assigning fresh content restarts the
// matrix's lifecycle.
//
// A shape mismatch or nil serial matrix on the root is reported on every
// rank identically (the root broadcasts a verdict header before any data
// moves, so no rank is left stranded in a receive).
func (a *Matrix) Assign(ctx context.Context, s *dense.Matrix) error {
	// Stage 1 (Validate on root, agree everywhere).
	verdict := make([]float64, 1)
	if a.grid.Rank() == 0 {
		switch {
		case s == nil:
			verdict[0] = assignNilSerial
		case s.Rows() != a.m || s.Cols() != a.n:
			verdict[0] = assignShapeMismatch
		}
	}
	if err := a.grid.World().Bcast(ctx, verdict, 0); err != nil {
		return err
	}
	switch verdict[0] {
	case assignNilSerial:
		return fmt.Errorf("Assign: %w", ErrNilSerial)
	case assignShapeMismatch:
		return fmt.Errorf("Assign to %dx%d: %w", a.m, a.n, ErrShapeMismatch)
	}

	// Stage 2 (Scatter): the root packs one buffer per active rank in the
	// cyclic layout and ships it; each active rank fills its local block.
	if a.grid.Active() {
		if err := a.scatterSerial(ctx, s); err != nil {
			return err
		}
	}

	// Stage 3 (Finalize): every rank, active or not, tracks the transition.
	a.state = Assigned

	return nil
}

// CopyTo gathers the distributed content back into a serial matrix on the
// pool root. The root receives the assembled matrix; every other rank
// receives nil. Collective over the pool; valid in any state except
// Unassigned (factors, inverses and eigenvector sets are all gatherable).
func (a *Matrix) CopyTo(ctx context.Context) (*dense.Matrix, error) {
	if a.state == Unassigned {
		return nil, fmt.Errorf("CopyTo: state is %s: %w", a.state, ErrState)
	}
	if !a.grid.Active() {
		return nil, nil
	}

	return a.gatherSerial(ctx)
}

// Verdict codes for the Assign header broadcast.
const (
	assignOK            = 0.0
	assignNilSerial     = 1.0
	assignShapeMismatch = 2.0
)

// scatterSerial distributes s from active rank 0. Runs on active ranks only.
func (a *Matrix) scatterSerial(ctx context.Context, s *dense.Matrix) error {
	c := a.desc.Comm
	if c.Rank() != 0 {
		if a.desc.LocalRows()*a.desc.LocalCols() > 0 {
			return c.Recv(ctx, a.local, 0, tagScatterBlock)
		}

		return nil
	}

	for r := 0; r < c.Size(); r++ {
		pr, pc := r/a.desc.Q, r%a.desc.Q
		buf, err := a.packFor(s, pr, pc)
		if err != nil {
			return err
		}
		if len(buf) == 0 {
			continue
		}
		if r == 0 {
			copy(a.local, buf)

			continue
		}
		if err := c.Send(ctx, buf, r, tagScatterBlock); err != nil {
			return err
		}
	}

	return nil
}

// packFor extracts the cyclic block content owned by grid coordinate
// (pr, pc) from the serial matrix, row-major.
func (a *Matrix) packFor(s *dense.Matrix, pr, pc int) ([]float64, error) {
	rows, cols := a.extentsAt(pr, pc)
	buf := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		gi := backend.ToGlobal(i, a.mb, pr, a.desc.RowSrc, a.desc.P)
		for j := 0; j < cols; j++ {
			gj := backend.ToGlobal(j, a.nb, pc, a.desc.ColSrc, a.desc.Q)
			v, err := s.At(gi, gj)
			if err != nil {
				return nil, err
			}
			buf[i*cols+j] = v
		}
	}

	return buf, nil
}

// gatherSerial assembles the distributed content on active rank 0. Runs on
// active ranks only.
func (a *Matrix) gatherSerial(ctx context.Context) (*dense.Matrix, error) {
	c := a.desc.Comm
	if c.Rank() != 0 {
		if a.desc.LocalRows()*a.desc.LocalCols() > 0 {
			return nil, c.Send(ctx, a.local, 0, tagGatherBlock)
		}

		return nil, nil
	}

	out, err := dense.New(a.m, a.n)
	if err != nil {
		return nil, err
	}
	for r := 0; r < c.Size(); r++ {
		pr, pc := r/a.desc.Q, r%a.desc.Q
		rows, cols := a.extentsAt(pr, pc)
		if rows*cols == 0 {
			continue
		}
		buf := a.local
		if r != 0 {
			buf = make([]float64, rows*cols)
			if err := c.Recv(ctx, buf, r, tagGatherBlock); err != nil {
				return nil, err
			}
		}
		for i := 0; i < rows; i++ {
			gi := backend.ToGlobal(i, a.mb, pr, a.desc.RowSrc, a.desc.P)
			for j := 0; j < cols; j++ {
				gj := backend.ToGlobal(j, a.nb, pc, a.desc.ColSrc, a.desc.Q)
				if err := out.Set(gi, gj, buf[i*cols+j]); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// extentsAt returns the local extents of the rank at grid coordinate (pr, pc).
func (a *Matrix) extentsAt(pr, pc int) (int, int) {
	return backend.NumLocal(a.m, a.mb, pr, a.desc.RowSrc, a.desc.P),
		backend.NumLocal(a.n, a.nb, pc, a.desc.ColSrc, a.desc.Q)
}
