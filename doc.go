// Package gridla is a distributed dense linear-algebra core: a 2D process
// grid, block-cyclic matrix decomposition, and collective factorization /
// eigensolve operations over an explicit message-passing substrate.
//
// 🚀 What is gridla?
//
//	A library for running dense symmetric solves across a pool of SPMD
//	processes, bringing together:
//		• Process grids: map a flat rank pool onto p×q rows and columns
//		• Block-cyclic layout: ScaLAPACK-convention global↔local index maps
//		• Lifecycle-checked matrices: Assign → Cholesky → Invert, eigensolves
//		• Norms & conditioning: l1, l∞, Frobenius, reciprocal condition number
//		• Pluggable substrate: in-process channels for tests, MPI for clusters
//
// ✨ Why choose gridla?
//
//   - Deterministic collectives – every rank returns the same value or the
//     same typed error, idle ranks included
//   - Pure Go reference path – run and debug a "cluster" inside one test
//     process, no MPI launcher required
//   - Explicit state machine – misordered operations fail fast with
//     sentinel errors, never with a hang
//   - Extensible – swap the numeric kernel or the communicator without
//     touching the matrix layer
//
// Under the hood, everything is organized under five subpackages:
//
//	comm/    — Communicator interface, in-process engine, collective schedules
//	grid/    — p×q process grids, shape heuristic, root bridge to idle ranks
//	dense/   — minimal serial matrix for the scatter/gather boundary
//	backend/ — block-cyclic descriptors and the numeric Kernel (gonum LAPACK)
//	distmat/ — the distributed Matrix: lifecycle, operations, norms
//
// Quick sketch of a 2×2 grid over a 5-rank pool:
//
//	ranks: 0 1 2 3 4
//	        │ │ │ │ └── idle, fed results over the root bridge
//	        └─┴─┴─┴──── grid (0,0) (0,1) (1,0) (1,1)
//
// Minimal usage:
//
//	err := comm.RunLocal(4, func(c comm.Communicator) error {
//		g, _ := grid.New(c, 2, 2)
//		a, _ := distmat.New(g, n, n,
//			distmat.WithProperty(distmat.Symmetric))
//		if err := a.Assign(ctx, serial); err != nil { // serial on rank 0
//			return err
//		}
//		return a.FactorizeAndInvert(ctx)
//	})
//
// See each subpackage's doc.go for contracts, complexity and determinism
// notes.
package gridla
