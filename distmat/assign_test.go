package distmat_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridla/comm"
	"github.com/katalvlaran/gridla/distmat"
)

// TestAssignCopyRoundTrip scatters a serial matrix, gathers it back, and
// demands bit-exact equality on the root for a spread of shapes, block
// sizes and grids, including grids with idle ranks and dimensions that do
// not divide evenly into blocks.
func TestAssignCopyRoundTrip(t *testing.T) {
	gen := func(i, j int) float64 { return float64(100*i + j) }

	cases := []struct {
		np, p, q int
		m, n     int
		mb, nb   int
	}{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 1, 5, 3, 2, 2},
		{4, 2, 2, 8, 8, 2, 2},
		{4, 2, 2, 9, 7, 2, 3},
		{4, 4, 1, 10, 10, 3, 3},
		{6, 2, 3, 11, 13, 4, 2},
		{6, 2, 2, 9, 9, 2, 2}, // two idle ranks sit out the data motion
		{5, 2, 2, 7, 7, 3, 3},
	}
	for _, tc := range cases {
		tc := tc
		name := fmt.Sprintf("np=%d_%dx%d_m=%dx%d_b=%dx%d", tc.np, tc.p, tc.q, tc.m, tc.n, tc.mb, tc.nb)
		t.Run(name, func(t *testing.T) {
			ctx := testCtx(t)
			err := comm.RunLocal(tc.np, func(c comm.Communicator) error {
				a, _ := newAssigned(t, ctx, c, tc.p, tc.q, tc.m, tc.n, gen,
					distmat.WithBlockSize(tc.mb, tc.nb))
				require.Equal(t, distmat.Assigned, a.State())

				got, err := a.CopyTo(ctx)
				require.NoError(t, err)
				if c.Rank() != 0 {
					require.Nil(t, got)

					return nil
				}
				require.Equal(t, tc.m, got.Rows())
				require.Equal(t, tc.n, got.Cols())
				for i := 0; i < tc.m; i++ {
					for j := 0; j < tc.n; j++ {
						v, err := got.At(i, j)
						require.NoError(t, err)
						require.Equal(t, gen(i, j), v, "(%d,%d)", i, j)
					}
				}

				return nil
			})
			require.NoError(t, err)
		})
	}
}

// TestAssign_Reassign overwrites a matrix with fresh content; the second
// scatter must fully replace the first, whatever state the matrix was in.
func TestAssign_Reassign(t *testing.T) {
	ctx := testCtx(t)
	err := comm.RunLocal(4, func(c comm.Communicator) error {
		first := func(i, j int) float64 { return 1 }
		second := func(i, j int) float64 { return float64(i - j) }

		a, _ := newAssigned(t, ctx, c, 2, 2, 6, 6, first, distmat.WithBlockSize(2, 2))

		var s = nilUnlessRoot(t, c, 6, 6, second)
		require.NoError(t, a.Assign(ctx, s))
		require.Equal(t, distmat.Assigned, a.State())

		got, err := a.CopyTo(ctx)
		require.NoError(t, err)
		if c.Rank() == 0 {
			for i := 0; i < 6; i++ {
				for j := 0; j < 6; j++ {
					v, _ := got.At(i, j)
					require.Equal(t, second(i, j), v)
				}
			}
		}

		return nil
	})
	require.NoError(t, err)
}
