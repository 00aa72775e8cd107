// SPDX-License-Identifier: MIT
package param

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmcmc/matrix"
	"github.com/katalvlaran/lvmcmc/numeric"
	"github.com/katalvlaran/lvmcmc/random"
)

// ErrNilSource is returned by StartValues when randomization has no source.
var ErrNilSource = errors.New("param: nil random source")

func packedOffset(i, j int) int { return i*(i+1)/2 + j }

// covariance returns corr[i,j] · s2 · err_i · err_j, with s2 the squared
// error scaling.
func (l *List) covariance(i, j int, s2 float64) float64 {
	return l.Correlation(i, j) * s2 * l.params[i].err * l.params[j].err
}

// CovarianceMatrix returns the lower triangle of
// Cov[i,j] = corr[i,j] · s² · err_i · err_j.
//
// Complexity: O(n²/2).
func (l *List) CovarianceMatrix() *matrix.Lower {
	n := len(l.params)
	s2 := numeric.Pow(l.scaling, 2)
	packed := make([]float64, n*(n+1)/2)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			packed[packedOffset(i, j)] = l.covariance(i, j, s2)
		}
	}
	cov, _ := matrix.NewLowerFrom(n, packed) // packed has the exact length

	return cov
}

// CholeskyDecomp returns the lower-triangular factor L of the covariance
// matrix, L·Lᵀ = Cov.
//
// Stages:
//   - Stage 1: select the parameters to factor: all of them, or only those
//     with non-zero scaled error under WithFreeFactorization.
//   - Stage 2: factor their covariance (sub-)matrix with matrix.Cholesky.
//   - Stage 3: scatter the factor back; unselected rows stay zero.
//
// When the matrix is not positive definite (a zero-error parameter included)
// the failure is logged with the 1-based parameter row, the fallback hook
// runs, and diag(s·err_i) is returned.
//
// Complexity: O(m³/6) for m selected parameters.
func (l *List) CholeskyDecomp() *matrix.Lower {
	scaled := l.Errors()
	n := len(scaled)

	// Stage 1
	free := make([]int, 0, n)
	for i, e := range scaled {
		if !l.freeOnly || e != 0 {
			free = append(free, i)
		}
	}
	m := len(free)

	// Stage 2
	s2 := numeric.Pow(l.scaling, 2)
	sub := make([]float64, m*(m+1)/2)
	var a, b int
	for a = 0; a < m; a++ {
		for b = 0; b <= a; b++ {
			sub[packedOffset(a, b)] = l.covariance(free[a], free[b], s2)
		}
	}
	subCov, _ := matrix.NewLowerFrom(m, sub) // sub has the exact length
	factor, err := matrix.Cholesky(subCov)
	if err != nil {
		l.reportFallback(free, err)
		return matrix.NewDiagonal(scaled)
	}

	// Stage 3
	fp := factor.Packed()
	full := make([]float64, n*(n+1)/2)
	for a = 0; a < m; a++ {
		for b = 0; b <= a; b++ {
			full[packedOffset(free[a], free[b])] = fp[packedOffset(a, b)]
		}
	}
	out, _ := matrix.NewLowerFrom(n, full) // full has the exact length

	return out
}

// reportFallback logs a failed factorization in parameter terms.
func (l *List) reportFallback(free []int, err error) {
	var ce *matrix.CholeskyError
	if !errors.As(err, &ce) || ce.Row < 1 || ce.Row > len(free) {
		l.logger.Error(err, "covariance factorization failed, using diagonal errors")
		return
	}
	idx := free[ce.Row-1]
	l.logger.Error(err, "covariance matrix not positive definite, using diagonal errors",
		"row", idx+1, "parameter", l.params[idx].name, "pivot", ce.Pivot)
	if l.onFallback != nil {
		l.onFallback(idx, ce)
	}
}

// StartValues returns the start point. With randomized set it draws from
// N(start, Cov) through the current Cholesky factor and resets fixed
// parameters to their start. The result is always constrained to the limits.
//
// Errors:
//   - ErrNilSource (randomized with a nil src), errors from src.
func (l *List) StartValues(randomized bool, src random.Source) ([]float64, error) {
	pt := make([]float64, len(l.params))
	for i, p := range l.params {
		pt[i] = p.start
	}
	if randomized && len(pt) > 0 {
		if src == nil {
			return nil, ErrNilSource
		}
		drawn, err := src.GaussianMultivariate(pt, l.CholeskyDecomp())
		if err != nil {
			return nil, fmt.Errorf("param: StartValues: %w", err)
		}
		for i, p := range l.params {
			if !p.fixed {
				pt[i] = drawn[i]
			}
		}
	}
	for i, p := range l.params {
		pt[i] = p.ConstrainToLimits(pt[i])
	}

	return pt, nil
}
