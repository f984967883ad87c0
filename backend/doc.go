// Package backend defines the numerical-kernel contract consumed by
// distributed matrices, the distribution descriptor passed with every call,
// and the block-cyclic index arithmetic both sides of the contract share.
//
// The backend package provides:
//
//   - Desc — an immutable distribution descriptor: global shape, block
//     sizes, grid shape and coordinates, local leading dimension, and the
//     grid communication context. Built once per matrix, never mutated.
//   - Kernel — the dense-kernel contract: in-place triangular factorization
//     (Potrf), triangular-factor inversion (Potri), symmetric eigensolve
//     (Syev) with a mandatory workspace-sizing query, and condition-number
//     estimation (Pocon). All kernel calls are collective over the
//     descriptor's grid context and must be entered by every active rank.
//   - Error — the typed numerical failure carrying the LAPACK-style status:
//     Info > 0 is a numerical failure at position Info (non-positive-definite
//     leading submatrix, eigensolver non-convergence), Info < 0 flags the
//     -Info-th argument as illegal.
//   - Gonum — a reference Kernel that gathers the distributed content to
//     the grid root, runs gonum's LAPACK implementation there, and scatters
//     results back. Correct at any grid shape and the right tool at
//     debugging scale; a production deployment would swap in a Kernel
//     backed by ScaLAPACK-class distributed routines.
//
// Index arithmetic follows the ScaLAPACK conventions (NUMROC-style local
// extents, INDXG2P/INDXG2L/INDXL2G-style coordinate maps), with 0-based
// indices throughout. Local blocks are stored row-major; Desc.LLD is the
// row stride of the local buffer.
package backend
