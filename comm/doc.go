// Package comm defines the message-passing substrate used by gridla to
// coordinate SPMD (single-program-multiple-data) processes, plus a pure-Go
// in-process implementation for tests and single-machine runs.
//
// The comm package provides:
//
//   - Communicator — the narrow contract every transport must satisfy:
//     blocking point-to-point Send/Recv, collective Bcast/Reduce/AllReduce/
//     Barrier, and Group for carving sub-communicators out of a parent.
//   - An in-process engine where each rank is a goroutine and messages
//     travel over rendezvous channels (see RunLocal).
//   - LinearBcast / LinearReduce — deterministic collective schedules built
//     on any point-to-point transport, shared by the local engine and the
//     MPI adapter in comm/gompi.
//
// Every collective call is a synchronization barrier: all members of the
// targeted group must enter it, or the group deadlocks. No call retries and
// no call times out on its own; pass a cancellable context to bound waits
// in the in-process engine. A rank that skips a collective is a structural
// bug in the caller, not a recoverable runtime condition.
//
// Reduction order is fixed (ascending rank), so floating-point reductions
// are bit-reproducible across runs with the same group size.
package comm
