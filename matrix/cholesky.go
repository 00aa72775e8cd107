// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Cholesky factors a symmetric positive-definite matrix A into L·Lᵀ.
//
// Implementation (classic column-by-column method, lower triangle only):
//   - Stage 1: validate A (non-nil, square) and pack its lower triangle.
//   - Stage 2: for k = 0..n-1:
//     q = A[k,k] − Σ_{m<k} L[k,m]²;
//     q ≤ 0 (or NaN) ⇒ fail with *CholeskyError{Row: k+1};
//     L[k,k] = √q;
//     L[i,k] = (A[i,k] − Σ_{m<k} L[i,m]·L[k,m]) / L[k,k] for i > k.
//
// Behavior highlights:
//   - Only the lower triangle of A is read; the upper triangle may hold anything.
//   - A *Lower input is read directly from its packed storage.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - *CholeskyError (errors.Is(err, ErrNotPositiveDefinite)) with the 1-based failing row.
//
// Complexity:
//   - Time O(n³/6), Space O(n²/2).
func Cholesky(a Matrix) (*Lower, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	packed, err := packLower(a)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := packed.n
	out := &Lower{n: n, data: make([]float64, len(packed.data))}
	src, dst := packed.data, out.data
	var (
		i, k, m    int
		rowK, rowI int
		q, lkk, s  float64
	)
	for k = 0; k < n; k++ {
		rowK = lowerOffset(k, 0)

		// Pivot: A[k,k] minus the squared norm of the already computed row prefix.
		q = src[rowK+k]
		for m = 0; m < k; m++ {
			q -= dst[rowK+m] * dst[rowK+m]
		}
		if !(q > 0) {
			return nil, &CholeskyError{Row: k + 1, Pivot: q}
		}
		lkk = math.Sqrt(q)
		dst[rowK+k] = lkk

		// Column k below the diagonal.
		for i = k + 1; i < n; i++ {
			rowI = lowerOffset(i, 0)
			s = src[rowI+k]
			for m = 0; m < k; m++ {
				s -= dst[rowI+m] * dst[rowK+m]
			}
			dst[rowI+k] = s / lkk
		}
	}

	return out, nil
}

// packLower copies the lower triangle of a square matrix into packed storage.
// A *Lower is returned as-is (it is only read).
func packLower(a Matrix) (*Lower, error) {
	if l, ok := a.(*Lower); ok {
		return l, nil
	}
	n := a.Rows()
	out := &Lower{n: n, data: make([]float64, packedLen(n))}
	if d, ok := a.(*Dense); ok {
		var i, j int
		for i = 0; i < n; i++ {
			for j = 0; j <= i; j++ {
				out.data[lowerOffset(i, j)] = d.data[i*d.c+j]
			}
		}
		return out, nil
	}

	// Generic fallback via At.
	var i, j int
	var v float64
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[lowerOffset(i, j)] = v
		}
	}

	return out, nil
}
