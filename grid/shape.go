// SPDX-License-Identifier: MIT
// Package grid: heuristic shape selection for NewForMatrix.

package grid

import "math"

// ceilDiv returns ceil(a/b) for positive a, b.
func ceilDiv(a, b int) int { return (a + b - 1) / b }

// chooseShape picks the grid shape (p, q) for an m×n matrix split into
// mb×nb blocks over a pool of np ranks.
//
// The usable rank count is min(ceil(m/mb)*ceil(n/nb), np): with more ranks
// than blocks the excess can never own a block. Within that budget the
// shape aims for p/q ≈ m/n, since a grid whose aspect ratio matches the
// matrix spreads the block-cyclic work most evenly. p is seeded with
// round(sqrt(usable·m/n)) and q takes the integer complement usable/p;
// the leftover ranks (usable − p·q) stay inactive.
//
// Deterministic: same inputs always produce the same shape.
// Complexity: O(1).
func chooseShape(m, n, mb, nb, np int) (p, q int) {
	blocks := ceilDiv(m, mb) * ceilDiv(n, nb)
	usable := np
	if blocks < usable {
		usable = blocks
	}

	ratio := float64(m) / float64(n)
	p = int(math.Round(math.Sqrt(ratio * float64(usable))))
	if p < 1 {
		p = 1
	}
	if p > usable {
		p = usable
	}
	q = usable / p

	return p, q
}
