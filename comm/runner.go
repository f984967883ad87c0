// SPDX-License-Identifier: MIT
// Package comm: SPMD harness for the in-process engine.

package comm

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RunLocal executes fn once per rank on n goroutines wired through a fresh
// in-process fabric, mirroring how an MPI launcher starts n copies of the
// same program. It blocks until every rank returns and reports the first
// non-nil error (remaining ranks are still waited for; a rank stuck in a
// collective abandoned by a failed peer is released only by the context its
// caller threads through fn).
//
// RunLocal is the entry point for every multi-process test in gridla and a
// convenient single-machine runtime for small problems.
func RunLocal(n int, fn func(Communicator) error) error {
	if n <= 0 {
		return fmt.Errorf("RunLocal(n=%d): %w", n, ErrBadPoolSize)
	}
	fab := newFabric(n)
	g := new(errgroup.Group)
	for r := 0; r < n; r++ {
		c := &local{rank: r, fab: fab}
		g.Go(func() error {
			if err := fn(c); err != nil {
				return fmt.Errorf("rank %d: %w", c.rank, err)
			}

			return nil
		})
	}

	return g.Wait()
}
