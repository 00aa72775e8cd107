// SPDX-License-Identifier: MIT

// Package param models the parameter space explored by the sampler.
//
// What:
//
//   - Limit: an optional bound, either NoLimit() or LimitAt(v).
//   - Parameter: an immutable description of one dimension (name, start value,
//     absolute error, optional lower/upper limits, fixed flag).
//   - List: an ordered, growable collection of Parameters plus a symmetric
//     correlation matrix (strict lower triangle, diagonal implicitly 1) and an
//     error-scaling factor. From these the List derives the covariance matrix
//     and its Cholesky factor, used as the proposal shape.
//
// Limits:
//
//	Intervals are closed: v == lower and v == upper are inside.
//	ConstrainToLimits clamps. ReflectFromLimits mirrors a violating value
//	about the violated limit (v' = 2·limit − v) and reports whether v' is
//	inside. A reflection landing exactly on the opposite bound is inside.
//
// Covariance model:
//
//	Cov[i,j] = corr[i,j] · s² · err_i · err_j     (s = error scaling)
//
//	Parameters whose scaled error is zero (typically fixed ones) are left out
//	of the factorization and get zero rows in the factor, so Gaussian draws
//	leave them untouched. When the remaining sub-matrix is not positive
//	definite, CholeskyDecomp logs the failing row and falls back to
//	diag(s · err_i). It never returns an error.
//
// Concurrency:
//
//	A List is not safe for concurrent mutation. The sampler gives every chain
//	its own Clone.
//
// Errors (sentinel):
//
//   - ErrConfiguration       invalid parameter or list definition (wrapped).
//   - ErrInvertedLimits      lower > upper.
//   - ErrStartOutsideLimits  start value outside the limits.
//   - ErrIndexOutOfRange     negative parameter or correlation index.
//   - ErrDimensionMismatch   point length differs from List.Len().
package param
