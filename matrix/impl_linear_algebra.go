// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix-vector products, the L·Lᵀ reconstruction of a triangular factor and
// tolerance comparison. All functions validate fail-fast and return clear
// errors on dimension mismatches.
//
// Notes:
//   - *Dense and *Lower operands unlock flat-slice fast paths; any other
//     Matrix goes through At with fixed i→j loop orders.

package matrix

import (
	"fmt"
	"math"
)

// MatVec computes y = m·x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Fast-paths: *Dense (flat rows) and *Lower (packed rows, O(n²/2)).
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if l, ok := m.(*Lower); ok {
		return l.MulVec(x)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var i, j, base int
	var acc, mv float64
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			acc = ZeroSum
			base = i * cols
			for j = 0; j < cols; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}
		return y, nil
	}

	var err error
	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			acc += mv * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// Reconstruct returns L·Lᵀ for a lower-triangular factor as a full symmetric Dense.
// It is the inverse of Cholesky and is used to verify factorizations.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (n == 0).
//
// Complexity: Time O(n³/3), Space O(n²).
func Reconstruct(l *Lower) (*Dense, error) {
	if l == nil {
		return nil, matrixErrorf("Reconstruct", ErrNilMatrix)
	}
	n := l.n
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("Reconstruct", err)
	}
	var i, j, k int
	var acc float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			acc = ZeroSum
			// (L·Lᵀ)[i,j] = Σ_k L[i,k]·L[j,k], k ≤ min(i,j) = j.
			for k = 0; k <= j; k++ {
				acc += l.get(i, k) * l.get(j, k)
			}
			res.data[i*n+j] = acc
			res.data[j*n+i] = acc
		}
	}

	return res, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	var i, j int
	var av, bv float64
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j) // shapes validated above
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
