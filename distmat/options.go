// SPDX-License-Identifier: MIT

// Package distmat: functional configuration for Matrix construction.
// This file defines:
//   - Option (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors.
//
// Design goals:
//   - Deterministic behavior: no global state, defaults in one place.
//   - Safe by construction: option values are validated in New so that
//     configuration errors surface as sentinels, not panics, on every rank
//     identically.

package distmat

import "github.com/katalvlaran/gridla/backend"

// Default block sizes. 32×32 balances per-block serial-kernel efficiency
// against parallel load balance for typical problem sizes.
const (
	DefaultRowBlock = 32
	DefaultColBlock = 32
)

// config collects construction parameters; fields are unexported and set
// only through options.
type config struct {
	mb, nb int
	prop   Property
	kernel backend.Kernel
}

func defaultConfig() config {
	return config{
		mb:     DefaultRowBlock,
		nb:     DefaultColBlock,
		prop:   General,
		kernel: backend.Gonum{},
	}
}

// Option adjusts Matrix construction.
type Option func(*config)

// WithBlockSize sets the row and column block sizes of the block-cyclic
// decomposition. Non-positive values surface as ErrBadBlockSize from New.
func WithBlockSize(mb, nb int) Option {
	return func(c *config) { c.mb, c.nb = mb, nb }
}

// WithProperty tags the matrix's structural property at construction.
// Cholesky and the eigensolvers require Symmetric.
func WithProperty(p Property) Option {
	return func(c *config) { c.prop = p }
}

// WithKernel substitutes the numerical backend. The default is the gonum
// reference backend; a deployment with ScaLAPACK-class bindings plugs its
// Kernel in here.
func WithKernel(k backend.Kernel) Option {
	return func(c *config) { c.kernel = k }
}
