// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Kernels return these sentinels (optionally wrapped with an operation tag via
// matrixErrorf) and tests match them with errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines are easy to grep.
// Wrap with fmt.Errorf("ctx: %w", ErrX) at the outer boundary only.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrUpperTriangle is returned when writing a non-zero value above the
	// diagonal of a lower-triangular matrix.
	ErrUpperTriangle = errors.New("matrix: write above the diagonal of a lower-triangular matrix")

	// ErrNotPositiveDefinite is returned by Cholesky when a leading minor is
	// not strictly positive. The concrete error is a *CholeskyError.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")
)

// CholeskyError reports the failing row of a Cholesky decomposition.
// Row is 1-based: Row == k+1 when the pivot of zero-based row k was ≤ 0.
type CholeskyError struct {
	Row   int     // 1-based failing row
	Pivot float64 // the non-positive pivot value A[k,k] − Σ L[k,m]²
}

// Error implements error.
func (e *CholeskyError) Error() string {
	return fmt.Sprintf("matrix: cholesky failed at row %d (pivot %g): not positive definite", e.Row, e.Pivot)
}

// Unwrap lets errors.Is(err, ErrNotPositiveDefinite) match.
func (e *CholeskyError) Unwrap() error { return ErrNotPositiveDefinite }

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
