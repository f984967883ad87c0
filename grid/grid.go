// SPDX-License-Identifier: MIT
// Package grid: ProcessGrid construction and communicator plumbing.

package grid

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridla/comm"
)

// Grid is a logical 2D arrangement of the first rows×cols ranks of a
// process pool. It is immutable after construction; matrices reference it,
// they never copy or mutate it. All state is reached through accessors so
// consumers depend on the capability surface, not on storage layout.
type Grid struct {
	world comm.Communicator

	rows, cols   int
	myRow, myCol int // meaningful only when active
	active       bool

	activeComm comm.Communicator // spans the rows*cols active ranks; nil on inactive ranks
	bridge     comm.Communicator // pool rank 0 + inactive ranks; nil elsewhere and when all ranks are active
	rowLine    comm.Communicator // active ranks sharing this rank's grid row; nil on inactive ranks
	colLine    comm.Communicator // active ranks sharing this rank's grid column; nil on inactive ranks
}

// New builds a rows×cols grid over the given pool. Collective: every rank
// of world must call it with the same dimensions.
//
// Returns ErrBadDims for non-positive dimensions and ErrGridTooLarge when
// rows*cols exceeds the pool size.
func New(world comm.Communicator, rows, cols int) (*Grid, error) {
	// Stage 1 (Validate): configuration errors are caught before any
	// communicator is carved, on every rank identically.
	if world == nil {
		return nil, ErrNilWorld
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("New(%d, %d): %w", rows, cols, ErrBadDims)
	}
	if rows*cols > world.Size() {
		return nil, fmt.Errorf("New(%d, %d) over pool of %d: %w", rows, cols, world.Size(), ErrGridTooLarge)
	}

	// Stage 2 (Prepare): classify this rank under row-major grid numbering.
	g := &Grid{world: world, rows: rows, cols: cols}
	rank := world.Rank()
	g.active = rank < rows*cols
	if g.active {
		g.myRow = rank / cols
		g.myCol = rank % cols
	} else {
		g.myRow, g.myCol = -1, -1
	}

	// Stage 3 (Execute): carve the grid context over the active ranks.
	activeRanks := rankRange(0, rows*cols)
	activeComm, err := world.Group(activeRanks)
	if err != nil {
		return nil, err
	}
	g.activeComm = activeComm

	// Root bridge: pool rank 0 plus every inactive rank. It exists only
	// when the pool is larger than the grid, and only to deliver results
	// to ranks excluded from the compute grid.
	if np := world.Size(); np > rows*cols {
		bridgeRanks := append([]int{0}, rankRange(rows*cols, np)...)
		g.bridge, err = world.Group(bridgeRanks)
		if err != nil {
			return nil, err
		}
	}

	// Stage 4 (Finalize): row and column lines for cross-process
	// reductions (norm computations reduce along these).
	if g.active {
		lineBase := g.myRow * cols
		g.rowLine, err = activeComm.Group(rankRange(lineBase, lineBase+cols))
		if err != nil {
			return nil, err
		}
		colRanks := make([]int, rows)
		for r := 0; r < rows; r++ {
			colRanks[r] = r*cols + g.myCol
		}
		g.colLine, err = activeComm.Group(colRanks)
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// NewForMatrix builds a grid shaped for an m×n matrix distributed in mb×nb
// blocks, using at most min(ceil(m/mb)*ceil(n/nb), Np) ranks and an aspect
// ratio approximating m:n. Collective, like New.
func NewForMatrix(world comm.Communicator, m, n, mb, nb int) (*Grid, error) {
	if world == nil {
		return nil, ErrNilWorld
	}
	if m < 1 || n < 1 || mb < 1 || nb < 1 {
		return nil, fmt.Errorf("NewForMatrix(%d, %d, %d, %d): %w", m, n, mb, nb, ErrBadBlock)
	}
	p, q := chooseShape(m, n, mb, nb, world.Size())

	return New(world, p, q)
}

// Rows returns the number of process rows p.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of process columns q.
func (g *Grid) Cols() int { return g.cols }

// Size returns the total pool size Np (active and inactive ranks).
func (g *Grid) Size() int { return g.world.Size() }

// Rank returns this process's rank within the pool.
func (g *Grid) Rank() int { return g.world.Rank() }

// MyRow returns this process's grid row, or -1 on inactive ranks.
func (g *Grid) MyRow() int { return g.myRow }

// MyCol returns this process's grid column, or -1 on inactive ranks.
func (g *Grid) MyCol() int { return g.myCol }

// Active reports whether this rank is part of the compute grid.
func (g *Grid) Active() bool { return g.active }

// World returns the communicator over the whole pool.
func (g *Grid) World() comm.Communicator { return g.world }

// ActiveComm returns the grid context spanning the active ranks in
// row-major order, or nil on inactive ranks.
func (g *Grid) ActiveComm() comm.Communicator { return g.activeComm }

// RowLine returns the communicator over the active ranks of this rank's
// grid row, or nil on inactive ranks.
func (g *Grid) RowLine() comm.Communicator { return g.rowLine }

// ColLine returns the communicator over the active ranks of this rank's
// grid column, or nil on inactive ranks.
func (g *Grid) ColLine() comm.Communicator { return g.colLine }

// RootBridge returns the communicator joining pool rank 0 with the
// inactive ranks, or nil on other ranks and on fully-active grids.
func (g *Grid) RootBridge() comm.Communicator { return g.bridge }

// BcastToInactive fans buf from pool rank 0 out to the inactive ranks over
// the root bridge. Rank 0 sends, inactive ranks receive, every other rank
// returns immediately: all ranks may (and for SPMD consistency should)
// call it unconditionally. No-op when every rank is active.
func (g *Grid) BcastToInactive(ctx context.Context, buf []float64) error {
	if g.bridge == nil {
		return nil
	}

	// Pool rank 0 is bridge rank 0 by construction of the bridge rank set.
	return g.bridge.Bcast(ctx, buf, 0)
}

// rankRange returns [lo, hi) as a rank slice.
func rankRange(lo, hi int) []int {
	ranks := make([]int, hi-lo)
	for i := range ranks {
		ranks[i] = lo + i
	}

	return ranks
}
