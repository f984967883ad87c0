// SPDX-License-Identifier: MIT
// Package comm: in-process substrate engine.
//
// Each rank is a goroutine holding a *local handle onto a shared fabric.
// Point-to-point messages travel over unbuffered rendezvous channels keyed
// by (src, dst, tag), created lazily under a mutex. Rendezvous semantics
// give the blocking behavior the Communicator contract requires without any
// additional synchronization machinery.
//
// Sub-groups carved by Group share one child fabric per distinct rank set,
// created on first request. SPMD callers invoke Group in lockstep on every
// rank, so the first arriver safely creates the child for the rest.

package comm

import (
	"context"
	"fmt"
)

// message is the unit moved through the fabric. The payload is always a
// private copy of the sender's buffer, so the sender may reuse its buffer
// immediately after Send returns.
type message struct {
	data []float64
}

// chanKey identifies one directed (src, dst, tag) conversation.
type chanKey struct {
	src, dst, tag int
}

// fabric is the state shared by all ranks of one in-process communicator.
type fabric struct {
	n      int
	links  syncMap[chanKey, chan message]
	groups syncMap[string, *fabric]
}

func newFabric(n int) *fabric {
	return &fabric{n: n}
}

// link returns the rendezvous channel for (src, dst, tag), creating it on
// first use. Both endpoints resolve the same channel.
func (f *fabric) link(src, dst, tag int) chan message {
	return f.links.getOrCreate(chanKey{src, dst, tag}, func() chan message {
		return make(chan message)
	})
}

// subgroup returns the child fabric for the given rank-set key, creating it
// on first use so all member ranks share one child.
func (f *fabric) subgroup(key string, size int) *fabric {
	return f.groups.getOrCreate(key, func() *fabric { return newFabric(size) })
}

// local is one rank's handle onto a fabric. It implements Communicator.
type local struct {
	rank int
	fab  *fabric
}

var _ Communicator = (*local)(nil)

// Rank returns this rank's position in the group.
func (c *local) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *local) Size() int { return c.fab.n }

// Send transmits a copy of buf to dest, blocking until dest posts the
// matching Recv or ctx is cancelled.
func (c *local) Send(ctx context.Context, buf []float64, dest, tag int) error {
	if dest < 0 || dest >= c.fab.n {
		return fmt.Errorf("Send(dest=%d): %w", dest, ErrRankOutOfRange)
	}
	if tag < 0 {
		return fmt.Errorf("Send(tag=%d): %w", tag, ErrBadTag)
	}
	cp := make([]float64, len(buf))
	copy(cp, buf)
	select {
	case c.fab.link(c.rank, dest, tag) <- message{data: cp}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv fills buf from the matching Send posted by src, blocking until the
// message arrives or ctx is cancelled.
func (c *local) Recv(ctx context.Context, buf []float64, src, tag int) error {
	if src < 0 || src >= c.fab.n {
		return fmt.Errorf("Recv(src=%d): %w", src, ErrRankOutOfRange)
	}
	if tag < 0 {
		return fmt.Errorf("Recv(tag=%d): %w", tag, ErrBadTag)
	}
	select {
	case msg := <-c.fab.link(src, c.rank, tag):
		if len(msg.data) != len(buf) {
			return fmt.Errorf("Recv(src=%d, tag=%d): got %d elements, want %d: %w",
				src, tag, len(msg.data), len(buf), ErrLengthMismatch)
		}
		copy(buf, msg.data)

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Bcast replicates root's buf into every rank's buf.
func (c *local) Bcast(ctx context.Context, buf []float64, root int) error {
	return LinearBcast(ctx, c, buf, root, tagBcast)
}

// Reduce combines every rank's buf under op into root's buf.
func (c *local) Reduce(ctx context.Context, buf []float64, op ReduceOp, root int) error {
	return LinearReduce(ctx, c, buf, op, root, tagReduce)
}

// AllReduce combines every rank's buf under op into every rank's buf.
func (c *local) AllReduce(ctx context.Context, buf []float64, op ReduceOp) error {
	return AllReduceOverP2P(ctx, c, buf, op)
}

// Barrier blocks until every rank of the group has entered it.
func (c *local) Barrier(ctx context.Context) error {
	return BarrierOverP2P(ctx, c)
}

// Group derives a sub-communicator over ranks. Member ranks share one child
// fabric keyed by the rank set; non-members receive (nil, nil).
func (c *local) Group(ranks []int) (Communicator, error) {
	if err := validateGroup(ranks, c.fab.n); err != nil {
		return nil, err
	}
	myNewRank := -1
	for i, r := range ranks {
		if r == c.rank {
			myNewRank = i

			break
		}
	}
	if myNewRank < 0 {
		return nil, nil // not a member; caller must not use the child
	}
	sub := c.fab.subgroup(fmt.Sprint(ranks), len(ranks))

	return &local{rank: myNewRank, fab: sub}, nil
}

// validateGroup rejects empty, out-of-range, duplicated or unsorted rank
// sets. Sorted ascending order makes the fabric key canonical.
func validateGroup(ranks []int, n int) error {
	if len(ranks) == 0 {
		return fmt.Errorf("Group: empty rank set: %w", ErrBadGroup)
	}
	prev := -1
	for _, r := range ranks {
		if r < 0 || r >= n {
			return fmt.Errorf("Group(rank=%d): %w", r, ErrRankOutOfRange)
		}
		if r <= prev {
			return fmt.Errorf("Group: ranks must be sorted ascending without duplicates: %w", ErrBadGroup)
		}
		prev = r
	}

	return nil
}
