// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel used by the
// sampler: row-major Dense matrices, packed lower-triangular storage (Lower)
// and the Cholesky factorization that turns a covariance matrix into the
// factor used for correlated Gaussian draws.
//
// What & Why:
//
//	Covariance and correlation matrices are symmetric, so only their lower
//	triangle is ever stored. Lower keeps n(n+1)/2 cells in row order, which
//	makes growing by one parameter a pure append, and doubles as the output
//	type of Cholesky (L with A = L·Lᵀ).
//
// Errors:
//
//	All kernels return sentinel errors (ErrOutOfRange, ErrDimensionMismatch,
//	ErrNotPositiveDefinite, ...) wrapped with an operation tag; match them
//	with errors.Is. Cholesky failures carry the 1-based failing row in a
//	*CholeskyError.
//
// Complexity:
//
//	At/Set are O(1); Cholesky is O(n³/6); MulVec on Lower is O(n²/2).
package matrix
