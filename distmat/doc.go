// Package distmat implements dense matrices distributed over a process
// grid by two-dimensional block-cyclic decomposition, and orchestrates
// distributed operations on them: Cholesky factorization, inversion,
// symmetric eigendecomposition, norms and condition-number estimation.
//
// A Matrix owns an M×N logical matrix split into MB×NB blocks scattered
// round-robin over the rows and columns of a grid.Grid. Each process holds
// exactly the blocks the cyclic mapping assigns to its grid coordinate, in
// one contiguous row-major local buffer; the mapping between global and
// local coordinates is a bijection (see package backend).
//
// Every operation is SPMD-collective over the matrix's grid scope: each
// process — active or inactive — executes the same call in the same order.
// Active processes carry data and invoke the numerical backend; inactive
// processes participate only in the result fan-out over the grid's root
// bridge, so all processes return identical results and track identical
// state. Skipping a call on some rank deadlocks the grid; there is no
// runtime detection for that, by contract.
//
// Operations move a matrix through a one-way state machine:
//
//	Unassigned ──Assign──▶ Assigned ──Cholesky──▶ CholeskyFactored ──Invert──▶ Inverted
//	                          │
//	                          └──Eigenpairs──▶ EigenvectorsComputed
//
// Norm queries and the condition-number estimate are read-only. Invoking
// an operation outside its required source state fails with ErrState and
// leaves the content untouched; no state is ever coerced implicitly.
// Inverted and EigenvectorsComputed are terminal: factor a fresh matrix by
// assigning new content to a new Matrix.
//
// Numerical failures (a non-positive-definite input, a non-converging
// eigensolve) surface as *backend.Error on every rank, never as a crash
// and never silently.
package distmat
