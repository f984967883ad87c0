//go:build mpi

// SPDX-License-Identifier: MIT
// Package gompi: comm.Communicator over github.com/sbromberger/gompi.

package gompi

import (
	"context"
	"fmt"

	mpi "github.com/sbromberger/gompi"

	"github.com/katalvlaran/gridla/comm"
)

// Comm wraps one MPI communicator. Construct the world communicator with
// Wrap after mpi.Start; derive sub-groups with Group.
type Comm struct {
	c          *mpi.Communicator
	worldRanks []int // parent-world rank of each group rank; identity for the world
}

var _ comm.Communicator = (*Comm)(nil)

// Wrap adapts an existing gompi communicator spanning all started ranks.
func Wrap(c *mpi.Communicator) *Comm {
	ranks := make([]int, c.Size())
	for i := range ranks {
		ranks[i] = i
	}

	return &Comm{c: c, worldRanks: ranks}
}

// Rank returns this process's rank within the group.
func (g *Comm) Rank() int { return g.c.Rank() }

// Size returns the number of ranks in the group.
func (g *Comm) Size() int { return g.c.Size() }

// Send transmits buf to dest. The context is ignored once the MPI call is
// issued; MPI sends cannot be cancelled.
func (g *Comm) Send(ctx context.Context, buf []float64, dest, tag int) error {
	if err := g.check(ctx, dest, tag); err != nil {
		return err
	}
	g.c.SendFloat64s(buf, dest, tag)

	return nil
}

// Recv fills buf from the matching Send posted by src.
func (g *Comm) Recv(ctx context.Context, buf []float64, src, tag int) error {
	if err := g.check(ctx, src, tag); err != nil {
		return err
	}
	data, _ := g.c.RecvFloat64s(src, tag)
	if len(data) != len(buf) {
		return fmt.Errorf("Recv(src=%d, tag=%d): got %d elements, want %d: %w",
			src, tag, len(data), len(buf), comm.ErrLengthMismatch)
	}
	copy(buf, data)

	return nil
}

// Bcast replicates root's buf into every rank's buf.
func (g *Comm) Bcast(ctx context.Context, buf []float64, root int) error {
	return comm.LinearBcast(ctx, g, buf, root, comm.TagReserved)
}

// Reduce combines every rank's buf under op into root's buf.
func (g *Comm) Reduce(ctx context.Context, buf []float64, op comm.ReduceOp, root int) error {
	return comm.LinearReduce(ctx, g, buf, op, root, comm.TagReserved+1)
}

// AllReduce combines every rank's buf under op into every rank's buf.
func (g *Comm) AllReduce(ctx context.Context, buf []float64, op comm.ReduceOp) error {
	return comm.AllReduceOverP2P(ctx, g, buf, op)
}

// Barrier blocks until every rank of the group has entered it.
func (g *Comm) Barrier(ctx context.Context) error {
	return comm.BarrierOverP2P(ctx, g)
}

// Group derives a sub-communicator over the given parent ranks. MPI group
// creation is collective over the parent: every parent rank must call Group
// with the same rank set. Non-members receive (nil, nil).
func (g *Comm) Group(ranks []int) (comm.Communicator, error) {
	if len(ranks) == 0 {
		return nil, fmt.Errorf("Group: empty rank set: %w", comm.ErrBadGroup)
	}
	myNewRank := -1
	world := make([]int, len(ranks))
	prev := -1
	for i, r := range ranks {
		if r < 0 || r >= g.Size() {
			return nil, fmt.Errorf("Group(rank=%d): %w", r, comm.ErrRankOutOfRange)
		}
		if r <= prev {
			return nil, fmt.Errorf("Group: ranks must be sorted ascending without duplicates: %w", comm.ErrBadGroup)
		}
		prev = r
		world[i] = g.worldRanks[r]
		if r == g.Rank() {
			myNewRank = i
		}
	}
	sub := mpi.NewCommunicator(world)
	if myNewRank < 0 {
		return nil, nil
	}

	return &Comm{c: sub, worldRanks: world}, nil
}

func (g *Comm) check(ctx context.Context, peer, tag int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if peer < 0 || peer >= g.Size() {
		return fmt.Errorf("peer rank %d: %w", peer, comm.ErrRankOutOfRange)
	}
	if tag < 0 {
		return fmt.Errorf("tag %d: %w", tag, comm.ErrBadTag)
	}

	return nil
}
