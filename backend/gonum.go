// SPDX-License-Identifier: MIT
// Package backend: reference Kernel over gonum's LAPACK implementation.

package backend

import (
	"context"

	"gonum.org/v1/gonum/lapack"
	lapackgonum "gonum.org/v1/gonum/lapack/gonum"

	"github.com/katalvlaran/gridla/comm"
)

// Internal tags for the gather/scatter traffic, above comm.TagReserved and
// disjoint from the tags the collective schedules use.
const (
	tagGather  = comm.TagReserved + 16
	tagScatter = comm.TagReserved + 17
)

// lapackImpl is gonum's serial LAPACK; stateless and safe for concurrent use.
var lapackImpl = lapackgonum.Implementation{}

// Gonum is the reference Kernel: it gathers the block-cyclic content to the
// grid root, runs gonum's serial LAPACK there, scatters results back and
// broadcasts the status so every active rank observes the same outcome.
//
// Cost is proportional to the full matrix on the root, so Gonum is a
// correctness reference and a debugging-scale backend, not a scalable one.
// Note that gonum's boolean status does not recover the failing leading
// minor, so numerical failures always report Info = 1.
type Gonum struct{}

var _ Kernel = Gonum{}

// Potrf overwrites the selected triangle with the Cholesky factor.
// Fails with Info > 0 when the matrix is not positive definite; the
// distributed content is left unchanged on failure.
func (Gonum) Potrf(ctx context.Context, a []float64, d Desc, uplo Triangle) error {
	if d.M != d.N {
		return illegalArg("potrf", 3)
	}
	full, err := gatherToRoot(ctx, a, d)
	if err != nil {
		return err
	}
	n := d.N
	run := func() bool { return lapackImpl.Dpotrf(uplo.uplo(), n, full, max(1, n)) }
	if err := rootStep(ctx, d, "potrf", run); err != nil {
		return err
	}

	return scatterFromRoot(ctx, full, a, d)
}

// Potri overwrites a Cholesky factor with the same triangle of the inverse.
func (Gonum) Potri(ctx context.Context, a []float64, d Desc, uplo Triangle) error {
	if d.M != d.N {
		return illegalArg("potri", 3)
	}
	full, err := gatherToRoot(ctx, a, d)
	if err != nil {
		return err
	}
	n := d.N
	run := func() bool { return lapackImpl.Dpotri(uplo.uplo(), n, full, max(1, n)) }
	if err := rootStep(ctx, d, "potri", run); err != nil {
		return err
	}

	return scatterFromRoot(ctx, full, a, d)
}

// SyevWorkspace returns gonum's documented minimum Dsyev workspace,
// max(1, 3n-1) float64 elements.
func (Gonum) SyevWorkspace(d Desc, vectors bool) int {
	_ = vectors // Dsyev prescribes the same minimum for both jobs

	return max(1, 3*d.N-1)
}

// Syev computes all eigenvalues (ascending, as returned by the backend —
// never re-sorted here) and optionally overwrites the matrix columns with
// eigenvectors.
func (Gonum) Syev(ctx context.Context, a []float64, d Desc, uplo Triangle, vectors bool, eigs, work []float64) error {
	if d.M != d.N {
		return illegalArg("syev", 3)
	}
	n := d.N
	if len(eigs) < n {
		return illegalArg("syev", 6)
	}
	if len(work) < max(1, 3*n-1) {
		return illegalArg("syev", 7)
	}
	full, err := gatherToRoot(ctx, a, d)
	if err != nil {
		return err
	}
	jobz := lapack.EVNone
	if vectors {
		jobz = lapack.EVCompute
	}
	run := func() bool { return lapackImpl.Dsyev(jobz, uplo.uplo(), n, full, max(1, n), eigs, work, len(work)) }
	if err := rootStep(ctx, d, "syev", run); err != nil {
		return err
	}
	// Eigenvalues must be identical on every active rank.
	if err := d.Comm.Bcast(ctx, eigs[:n], 0); err != nil {
		return err
	}
	if !vectors {
		return nil
	}

	return scatterFromRoot(ctx, full, a, d)
}

// Pocon estimates the reciprocal condition number from the Cholesky factor
// in a and the pre-factorization l1 norm anorm.
func (Gonum) Pocon(ctx context.Context, a []float64, d Desc, uplo Triangle, anorm float64) (float64, error) {
	if d.M != d.N {
		return 0, illegalArg("pocon", 3)
	}
	full, err := gatherToRoot(ctx, a, d)
	if err != nil {
		return 0, err
	}
	n := d.N
	out := make([]float64, 1)
	if d.Comm.Rank() == 0 {
		work := make([]float64, 3*n)
		iwork := make([]int, n)
		out[0] = lapackImpl.Dpocon(uplo.uplo(), n, full, max(1, n), anorm, work, iwork)
	}
	if err := d.Comm.Bcast(ctx, out, 0); err != nil {
		return 0, err
	}

	return out[0], nil
}

// rootStep runs the serial kernel on the grid root and broadcasts its
// status so all active ranks agree on success or failure.
func rootStep(ctx context.Context, d Desc, op string, run func() bool) error {
	status := make([]float64, 1)
	if d.Comm.Rank() == 0 && !run() {
		status[0] = 1
	}
	if err := d.Comm.Bcast(ctx, status, 0); err != nil {
		return err
	}
	if status[0] != 0 {
		return &Error{Op: op, Info: int(status[0])}
	}

	return nil
}

// gatherToRoot assembles the distributed content into a row-major M×N
// buffer on active rank 0 (returned nil elsewhere). Grid coordinates map to
// active ranks row-major: rank = row*Q + col.
func gatherToRoot(ctx context.Context, a []float64, d Desc) ([]float64, error) {
	c := d.Comm
	myRows, myCols := d.LocalRows(), d.LocalCols()
	if c.Rank() != 0 {
		if myRows*myCols > 0 {
			// cols >= 1 implies LLD == cols, so the block is packed.
			return nil, c.Send(ctx, a[:myRows*myCols], 0, tagGather)
		}

		return nil, nil
	}

	full := make([]float64, d.M*d.N)
	for r := 0; r < c.Size(); r++ {
		pr, pc := r/d.Q, r%d.Q
		rows, cols := d.extentsAt(pr, pc)
		if rows*cols == 0 {
			continue
		}
		buf := a
		if r != 0 {
			buf = make([]float64, rows*cols)
			if err := c.Recv(ctx, buf, r, tagGather); err != nil {
				return nil, err
			}
		}
		stride := cols
		if r == 0 {
			stride = d.LLD
		}
		for i := 0; i < rows; i++ {
			gi := ToGlobal(i, d.MB, pr, d.RowSrc, d.P)
			for j := 0; j < cols; j++ {
				gj := ToGlobal(j, d.NB, pc, d.ColSrc, d.Q)
				full[gi*d.N+gj] = buf[i*stride+j]
			}
		}
	}

	return full, nil
}

// scatterFromRoot is the inverse of gatherToRoot: rank 0 repacks full into
// per-rank block buffers and distributes them; every rank overwrites its
// local block a.
func scatterFromRoot(ctx context.Context, full, a []float64, d Desc) error {
	c := d.Comm
	myRows, myCols := d.LocalRows(), d.LocalCols()
	if c.Rank() != 0 {
		if myRows*myCols > 0 {
			return c.Recv(ctx, a[:myRows*myCols], 0, tagScatter)
		}

		return nil
	}

	for r := 0; r < c.Size(); r++ {
		pr, pc := r/d.Q, r%d.Q
		rows, cols := d.extentsAt(pr, pc)
		if rows*cols == 0 {
			continue
		}
		if r == 0 {
			for i := 0; i < rows; i++ {
				gi := ToGlobal(i, d.MB, pr, d.RowSrc, d.P)
				for j := 0; j < cols; j++ {
					gj := ToGlobal(j, d.NB, pc, d.ColSrc, d.Q)
					a[i*d.LLD+j] = full[gi*d.N+gj]
				}
			}

			continue
		}
		buf := make([]float64, rows*cols)
		for i := 0; i < rows; i++ {
			gi := ToGlobal(i, d.MB, pr, d.RowSrc, d.P)
			for j := 0; j < cols; j++ {
				gj := ToGlobal(j, d.NB, pc, d.ColSrc, d.Q)
				buf[i*cols+j] = full[gi*d.N+gj]
			}
		}
		if err := c.Send(ctx, buf, r, tagScatter); err != nil {
			return err
		}
	}

	return nil
}
