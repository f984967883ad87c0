// SPDX-License-Identifier: MIT
// Package backend: distribution descriptor and block-cyclic index maps.
//
// All index arithmetic is 0-based. The maps form a bijection between
// global coordinates and (process, local offset) pairs: every global
// element lives on exactly one process at exactly one local offset, and
// both directions reproduce each other (covered by desc_test.go).

package backend

import "github.com/katalvlaran/gridla/comm"

// Desc describes how an M×N matrix is block-cyclically laid out over a
// p×q grid. It is a derived value object: computed once when a matrix is
// constructed, immutable afterwards, and passed to every kernel call.
//
// Local blocks are stored row-major; LLD is the local row stride
// (= LocalCols(), floored at 1 so degenerate empty blocks keep a legal
// leading dimension).
type Desc struct {
	M, N   int // global matrix shape
	MB, NB int // block sizes

	RowSrc, ColSrc int // grid coordinate owning the first row/column

	P, Q         int // grid shape
	MyRow, MyCol int // this rank's grid coordinate; (-1,-1) on inactive ranks

	LLD int // local leading dimension (row stride)

	Comm comm.Communicator // grid context over the active ranks; nil on inactive ranks
}

// NewDesc derives the descriptor for an m×n matrix in mb×nb blocks over a
// p×q grid, as seen from grid coordinate (myRow, myCol) with grid context c.
// Inactive ranks pass (-1, -1, nil) and get zero local extents.
func NewDesc(m, n, mb, nb, p, q, myRow, myCol int, c comm.Communicator) Desc {
	d := Desc{
		M: m, N: n, MB: mb, NB: nb,
		P: p, Q: q, MyRow: myRow, MyCol: myCol,
		Comm: c,
	}
	d.LLD = max(1, d.LocalCols())

	return d
}

// NumLocal returns the number of indices of a dimension of extent n, split
// into blocks of nb, owned by grid coordinate coord out of np, when the
// first block lives on coordinate src. This is the ceiling-block-count
// formula (ScaLAPACK NUMROC). Complexity: O(1).
func NumLocal(n, nb, coord, src, np int) int {
	if coord < 0 {
		return 0 // inactive rank owns nothing
	}
	myDist := (np + coord - src) % np
	nBlocks := n / nb
	local := (nBlocks / np) * nb
	switch extra := nBlocks % np; {
	case myDist < extra:
		local += nb
	case myDist == extra:
		local += n % nb
	}

	return local
}

// Owner returns the grid coordinate owning global index g in a dimension
// blocked by nb over np coordinates starting at src.
func Owner(g, nb, src, np int) int {
	return (g/nb + src) % np
}

// ToLocal maps global index g to the local index on its owning coordinate.
func ToLocal(g, nb, np int) int {
	return (g/(nb*np))*nb + g%nb
}

// ToGlobal maps local index l on grid coordinate coord back to the global
// index. Inverse of (Owner, ToLocal) for members of coord's index set.
func ToGlobal(l, nb, coord, src, np int) int {
	return (l/nb)*(nb*np) + ((np+coord-src)%np)*nb + l%nb
}

// LocalRows returns the number of matrix rows stored on this rank.
// Invariant for the descriptor's lifetime.
func (d Desc) LocalRows() int { return NumLocal(d.M, d.MB, d.MyRow, d.RowSrc, d.P) }

// LocalCols returns the number of matrix columns stored on this rank.
func (d Desc) LocalCols() int { return NumLocal(d.N, d.NB, d.MyCol, d.ColSrc, d.Q) }

// OwnerRow returns the grid row owning global row i.
func (d Desc) OwnerRow(i int) int { return Owner(i, d.MB, d.RowSrc, d.P) }

// OwnerCol returns the grid column owning global column j.
func (d Desc) OwnerCol(j int) int { return Owner(j, d.NB, d.ColSrc, d.Q) }

// LocalRow maps global row i to the local row index on its owner.
func (d Desc) LocalRow(i int) int { return ToLocal(i, d.MB, d.P) }

// LocalCol maps global column j to the local column index on its owner.
func (d Desc) LocalCol(j int) int { return ToLocal(j, d.NB, d.Q) }

// GlobalRow maps this rank's local row back to the global row index.
func (d Desc) GlobalRow(lr int) int { return ToGlobal(lr, d.MB, d.MyRow, d.RowSrc, d.P) }

// GlobalCol maps this rank's local column back to the global column index.
func (d Desc) GlobalCol(lc int) int { return ToGlobal(lc, d.NB, d.MyCol, d.ColSrc, d.Q) }

// Mine reports whether global element (i, j) is stored on this rank.
func (d Desc) Mine(i, j int) bool {
	return d.MyRow >= 0 && d.OwnerRow(i) == d.MyRow && d.OwnerCol(j) == d.MyCol
}

// extentsAt returns the local extents of the rank at grid coordinate
// (pr, pc); used by gather/scatter to size peer buffers.
func (d Desc) extentsAt(pr, pc int) (rows, cols int) {
	return NumLocal(d.M, d.MB, pr, d.RowSrc, d.P), NumLocal(d.N, d.NB, pc, d.ColSrc, d.Q)
}
