// SPDX-License-Identifier: MIT

// Package matrix - Lower: packed lower-triangular storage.
//
// Purpose:
//   - Store an n×n lower-triangular (or the lower half of a symmetric) matrix in
//     n(n+1)/2 cells; row i starts at offset i(i+1)/2, so growing the matrix by
//     k rows is a pure append and never moves existing cells.
//   - Reads above the diagonal yield 0; writes above the diagonal are rejected
//     unless the value is 0.
//
// Complexity quicksheet:
//   - NewLower: O(n²); At/Set: O(1); Grow: amortized O(Δ cells); MulVec: O(n²/2).

package matrix

import (
	"fmt"
	"strings"
)

// Lower is an n×n lower-triangular matrix in packed row-major layout.
// The zero value is a valid 0×0 matrix.
type Lower struct {
	n    int       // dimension
	data []float64 // packed rows: row i holds columns 0..i
}

var (
	_ Matrix       = (*Lower)(nil)
	_ fmt.Stringer = (*Lower)(nil)
)

// lowerOffset returns the packed offset of (i, j) for j ≤ i.
func lowerOffset(i, j int) int { return i*(i+1)/2 + j }

// packedLen returns the number of stored cells of an n×n lower triangle.
func packedLen(n int) int { return n * (n + 1) / 2 }

// NewLower allocates an n×n zero lower-triangular matrix.
// Unlike NewDense, n == 0 is allowed: an empty parameter space has an empty covariance.
//
// Errors:
//   - ErrInvalidDimensions (n < 0).
func NewLower(n int) (*Lower, error) {
	if n < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Lower{n: n, data: make([]float64, packedLen(n))}, nil
}

// NewLowerFrom builds an n×n lower-triangular matrix from its packed rows
// (row 0: 1 value, row 1: 2 values, ...). The slice is copied.
//
// Errors:
//   - ErrInvalidDimensions (n < 0).
//   - ErrDimensionMismatch (len(packed) != n(n+1)/2).
func NewLowerFrom(n int, packed []float64) (*Lower, error) {
	l, err := NewLower(n)
	if err != nil {
		return nil, err
	}
	if len(packed) != len(l.data) {
		return nil, matrixErrorf("NewLowerFrom", ErrDimensionMismatch)
	}
	copy(l.data, packed)

	return l, nil
}

// NewDiagonal returns the lower-triangular matrix diag(d).
func NewDiagonal(d []float64) *Lower {
	l := &Lower{n: len(d), data: make([]float64, packedLen(len(d)))}
	for i, v := range d {
		l.data[lowerOffset(i, i)] = v
	}

	return l
}

// Rows returns n.
func (l *Lower) Rows() int { return l.n }

// Cols returns n.
func (l *Lower) Cols() int { return l.n }

// N returns the dimension of the square matrix.
func (l *Lower) N() int { return l.n }

// At returns L[i,j]; cells above the diagonal read as 0.
func (l *Lower) At(i, j int) (float64, error) {
	if i < 0 || i >= l.n || j < 0 || j >= l.n {
		return 0, fmt.Errorf("Lower.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if j > i {
		return 0, nil
	}

	return l.data[lowerOffset(i, j)], nil
}

// Set writes L[i,j]. Writing a non-zero value above the diagonal fails with
// ErrUpperTriangle; writing 0 there is a no-op.
func (l *Lower) Set(i, j int, v float64) error {
	if i < 0 || i >= l.n || j < 0 || j >= l.n {
		return fmt.Errorf("Lower.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if j > i {
		if v == 0 {
			return nil
		}
		return fmt.Errorf("Lower.Set(%d,%d): %w", i, j, ErrUpperTriangle)
	}
	l.data[lowerOffset(i, j)] = v

	return nil
}

// get is the unchecked accessor used by kernels once bounds are validated (j ≤ i).
func (l *Lower) get(i, j int) float64 { return l.data[lowerOffset(i, j)] }

// Clone returns a deep copy.
func (l *Lower) Clone() Matrix { return l.Copy() }

// Copy is the typed form of Clone.
func (l *Lower) Copy() *Lower {
	cp := make([]float64, len(l.data))
	copy(cp, l.data)

	return &Lower{n: l.n, data: cp}
}

// Grow extends the matrix to n×n, zero-filling every new cell (including the
// new diagonal). Existing cells keep their values. Shrinking is not supported:
// n ≤ N() is a no-op. Returns the number of rows added.
func (l *Lower) Grow(n int) int {
	if n <= l.n {
		return 0
	}
	added := n - l.n
	l.data = append(l.data, make([]float64, packedLen(n)-len(l.data))...)
	l.n = n

	return added
}

// Diagonal returns a copy of the diagonal.
func (l *Lower) Diagonal() []float64 {
	d := make([]float64, l.n)
	for i := 0; i < l.n; i++ {
		d[i] = l.data[lowerOffset(i, i)]
	}

	return d
}

// Packed returns a copy of the packed rows (row i at offset i(i+1)/2).
func (l *Lower) Packed() []float64 {
	cp := make([]float64, len(l.data))
	copy(cp, l.data)

	return cp
}

// MulVec computes y = L·x in O(n²/2).
//
// Errors:
//   - ErrNilMatrix / ErrDimensionMismatch from ValidateVecLen.
func (l *Lower) MulVec(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, l.n); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, l.n)
	var i, j, base int
	var acc float64
	for i = 0; i < l.n; i++ {
		acc = ZeroSum
		base = lowerOffset(i, 0)
		for j = 0; j <= i; j++ {
			acc += l.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Dense materializes L as a full n×n Dense (zeros above the diagonal).
// For n == 0 it returns nil.
func (l *Lower) Dense() *Dense {
	if l.n == 0 {
		return nil
	}
	d := &Dense{r: l.n, c: l.n, data: make([]float64, l.n*l.n)}
	var i, j int
	for i = 0; i < l.n; i++ {
		for j = 0; j <= i; j++ {
			d.data[i*l.n+j] = l.get(i, j)
		}
	}

	return d
}

// Symmetric mirrors the stored lower triangle into a full symmetric n×n Dense.
// For n == 0 it returns nil.
func (l *Lower) Symmetric() *Dense {
	if l.n == 0 {
		return nil
	}
	d := &Dense{r: l.n, c: l.n, data: make([]float64, l.n*l.n)}
	var i, j int
	var v float64
	for i = 0; i < l.n; i++ {
		for j = 0; j <= i; j++ {
			v = l.get(i, j)
			d.data[i*l.n+j] = v
			d.data[j*l.n+i] = v
		}
	}

	return d
}

// String prints the full square, zeros above the diagonal.
func (l *Lower) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < l.n; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < l.n; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			if j > i {
				sb.WriteString("0")
				continue
			}
			fmt.Fprintf(&sb, "%g", l.get(i, j))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
