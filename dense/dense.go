// Package dense provides the serial dense-matrix boundary of gridla: a
// row-major 2D float64 container held by a single process, used to feed a
// distributed matrix (scatter) and to read one back (gather) at debugging
// scale. It deliberately carries no linear algebra of its own; numerical
// work belongs to package backend, and interop with gonum covers the rest.
package dense

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrBadShape indicates that requested matrix dimensions are non-positive.
var ErrBadShape = errors.New("dense: dimensions must be > 0")

// ErrOutOfRange indicates that a row or column index is outside valid bounds.
var ErrOutOfRange = errors.New("dense: index out of range")

// denseErrorf wraps an underlying error with method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a row-major serial matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Matrix struct {
	r, c int
	data []float64
}

// New creates an r×c matrix initialized to zeros.
// Returns ErrBadShape for non-positive dimensions.
// Complexity: O(r*c) time and memory.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Matrix{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewIdentity returns the n×n identity matrix.
// Complexity: O(n^2) zeroing plus O(n) diagonal writes.
func NewIdentity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Matrix) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Matrix) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col). Complexity: O(1).
func (m *Matrix) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col). Complexity: O(1).
func (m *Matrix) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy. Complexity: O(r*c).
func (m *Matrix) Clone() *Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Matrix{r: m.r, c: m.c, data: cp}
}

// ToGonum exports the matrix as a gonum *mat.Dense holding a copy of the
// data, for use with gonum routines as a serial oracle or post-processor.
func (m *Matrix) ToGonum() *mat.Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return mat.NewDense(m.r, m.c, cp)
}

// FromGonum imports a gonum matrix into a new Matrix, copying the data.
func FromGonum(src mat.Matrix) (*Matrix, error) {
	r, c := src.Dims()
	m, err := New(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i*c+j] = src.At(i, j)
		}
	}

	return m, nil
}

// String implements fmt.Stringer for debugging output.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteByte('\n')
	}

	return b.String()
}
