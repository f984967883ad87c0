// Package grid arranges a pool of SPMD processes into a logical 2D p×q
// process grid, the ownership structure behind block-cyclic matrix
// distribution.
//
// A pool of Np ranks is mapped onto the first p·q ranks in row-major order
// (rank = row·q + col); those ranks are active and carry matrix data. Any
// remaining ranks are inactive: they hold no data, but stay joined to the
// grid root through a secondary "root bridge" communicator whose only job
// is fanning computed results (eigenvalues, norms, status codes) out to
// them, so every rank of the original pool observes the same answers.
//
// For a 5-rank pool arranged 2×2, rank 4 is inactive:
//
//	      |   0     |   1
//	-----| ------- |-----
//	0    |   P0    |  P1
//	-----| ------- |-----
//	1    |   P2    |  P3
//
// Two construction modes exist: New takes explicit (rows, cols);
// NewForMatrix derives the shape from a target matrix's dimensions and
// block sizes, matching the grid aspect ratio to the matrix aspect ratio
// to minimize per-process load imbalance.
//
// A Grid is immutable after construction and is shared by reference across
// every distributed matrix built on it. Both constructors are collective
// over the pool: every rank must call them with identical arguments.
package grid
