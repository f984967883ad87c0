// SPDX-License-Identifier: MIT
// Package comm: collective schedules over a point-to-point transport.
//
// Purpose:
//   - Provide ONE canonical implementation of broadcast and reduction so the
//     in-process engine and the MPI adapter cannot drift semantically.
//   - Keep the schedules deterministic: fixed rank order, fixed operator
//     application order, so floating-point results are reproducible.
//
// The schedules are linear (O(P) messages through the root). That is the
// right trade-off at gridla's scale: the collectives move small headers,
// eigenvalue vectors and norm scalars, never the bulk matrix data.

package comm

import (
	"context"
	"fmt"
)

// Internal tags, all above TagReserved so they never collide with user
// point-to-point traffic riding the same communicator.
const (
	tagBcast   = TagReserved + 0
	tagReduce  = TagReserved + 1
	tagBarrier = TagReserved + 2
)

// LinearBcast replicates root's buf into every rank's buf using a linear
// root-fan-out schedule over p. Every rank of p must call it.
// Complexity: O(P) messages, O(len(buf)) per message.
func LinearBcast(ctx context.Context, p P2P, buf []float64, root, tag int) error {
	if root < 0 || root >= p.Size() {
		return fmt.Errorf("LinearBcast(root=%d): %w", root, ErrRankOutOfRange)
	}
	if p.Rank() != root {
		return p.Recv(ctx, buf, root, tag)
	}
	// Root sends to every other rank in ascending order.
	for r := 0; r < p.Size(); r++ {
		if r == root {
			continue
		}
		if err := p.Send(ctx, buf, r, tag); err != nil {
			return err
		}
	}

	return nil
}

// LinearReduce combines every rank's buf element-wise under op, leaving the
// result in root's buf; non-root buffers are unchanged. Contributions are
// folded in ascending rank order, which pins the floating-point result.
// Complexity: O(P) messages, O(P*len(buf)) combine work at root.
func LinearReduce(ctx context.Context, p P2P, buf []float64, op ReduceOp, root, tag int) error {
	if root < 0 || root >= p.Size() {
		return fmt.Errorf("LinearReduce(root=%d): %w", root, ErrRankOutOfRange)
	}
	if p.Rank() != root {
		return p.Send(ctx, buf, root, tag)
	}
	// Fold contributions rank by rank. The root's own buffer seeds the
	// accumulator; incoming buffers land in a scratch slice first.
	scratch := make([]float64, len(buf))
	for r := 0; r < p.Size(); r++ {
		if r == root {
			continue
		}
		if err := p.Recv(ctx, scratch, r, tag); err != nil {
			return err
		}
		combine(buf, scratch, op)
	}

	return nil
}

// AllReduceOverP2P reduces to rank 0 and broadcasts back out, leaving the
// combined result in every rank's buf. Every rank of p must call it.
func AllReduceOverP2P(ctx context.Context, p P2P, buf []float64, op ReduceOp) error {
	if err := LinearReduce(ctx, p, buf, op, 0, tagReduce); err != nil {
		return err
	}

	return LinearBcast(ctx, p, buf, 0, tagBcast)
}

// BarrierOverP2P blocks until every rank of p has entered it, implemented as
// an all-reduce of a single throwaway element.
func BarrierOverP2P(ctx context.Context, p P2P) error {
	token := []float64{0}
	if err := LinearReduce(ctx, p, token, OpSum, 0, tagBarrier); err != nil {
		return err
	}

	return LinearBcast(ctx, p, token, 0, tagBarrier)
}

// combine folds src into dst element-wise under op. Lengths must match;
// callers guarantee that via the Send/Recv length contract.
func combine(dst, src []float64, op ReduceOp) {
	switch op {
	case OpMax:
		for i, v := range src {
			if v > dst[i] {
				dst[i] = v
			}
		}
	default: // OpSum
		for i, v := range src {
			dst[i] += v
		}
	}
}
