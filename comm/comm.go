// SPDX-License-Identifier: MIT
// Package comm: substrate contract.
// This file defines ONLY the transport-facing types (Communicator, ReduceOp,
// P2P). Errors live in errors.go, the in-process engine in local.go, and the
// shared collective schedules in collective.go, per the global conventions.

package comm

import "context"

// ReduceOp selects the associative element-wise operator applied by Reduce
// and AllReduce.
type ReduceOp int

const (
	// OpSum accumulates element-wise sums.
	OpSum ReduceOp = iota
	// OpMax accumulates element-wise maxima.
	OpMax
)

// String returns the operator name for diagnostics.
func (op ReduceOp) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpMax:
		return "max"
	default:
		return "unknown"
	}
}

// Communicator is the message-passing contract gridla components consume.
// A Communicator spans a fixed group of ranks 0..Size()-1 and never changes
// membership after creation.
//
// All methods are blocking. Collective methods (Bcast, Reduce, AllReduce,
// Barrier) must be entered by every rank of the group, in the same order on
// every rank; violating that deadlocks the group. Send/Recv match on
// (source, destination, tag) in FIFO order.
//
// Tags partition independent point-to-point conversations. Tags at or above
// TagReserved are used internally by collectives and higher layers; user
// traffic should stay below it.
type Communicator interface {
	// Rank returns this process's rank within the group, 0 <= Rank < Size.
	Rank() int

	// Size returns the number of ranks in the group.
	Size() int

	// Send transmits buf to dest. Blocks until the matching Recv is posted.
	Send(ctx context.Context, buf []float64, dest, tag int) error

	// Recv fills buf from the matching Send posted by src. Blocks until the
	// message arrives. Returns ErrLengthMismatch if the sender's buffer
	// length differs from len(buf).
	Recv(ctx context.Context, buf []float64, src, tag int) error

	// Bcast replicates root's buf into every rank's buf. Collective.
	Bcast(ctx context.Context, buf []float64, root int) error

	// Reduce combines every rank's buf element-wise under op, leaving the
	// result in root's buf. Non-root buffers are unchanged. Collective.
	Reduce(ctx context.Context, buf []float64, op ReduceOp, root int) error

	// AllReduce combines every rank's buf element-wise under op, leaving the
	// result in every rank's buf. Collective.
	AllReduce(ctx context.Context, buf []float64, op ReduceOp) error

	// Barrier blocks until every rank of the group has entered it. Collective.
	Barrier(ctx context.Context) error

	// Group derives a sub-communicator over the given parent ranks, which
	// must be sorted ascending and duplicate-free. Member ranks receive a
	// communicator in which ranks[i] becomes rank i; non-member ranks
	// receive (nil, nil) and must not use the result. Every rank of the
	// parent may call Group; only members synchronize through the child.
	Group(ranks []int) (Communicator, error)
}

// TagReserved is the lowest tag value reserved for internal collective
// schedules. Application point-to-point traffic must use tags in
// [0, TagReserved).
const TagReserved = 1 << 30

// P2P is the minimal point-to-point surface the shared collective schedules
// in collective.go are built from. Both the in-process engine and the MPI
// adapter satisfy it.
type P2P interface {
	Rank() int
	Size() int
	Send(ctx context.Context, buf []float64, dest, tag int) error
	Recv(ctx context.Context, buf []float64, src, tag int) error
}
