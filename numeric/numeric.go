// SPDX-License-Identifier: MIT

// Package numeric holds small scalar helpers shared by the sampler packages:
// clamping, integer powers, a relative tolerance comparison and the
// normal-distribution shortcuts behind Gaussian intervals and the correlated
// objective.
package numeric

import (
	"cmp"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Pow returns x^n for an integer exponent by repeated squaring.
// Negative n yields 1/x^|n|.
func Pow(x float64, n int) float64 {
	if n < 0 {
		return 1 / Pow(x, -n)
	}
	result := 1.0
	for n > 0 {
		if n&1 == 1 {
			result *= x
		}
		x *= x
		n >>= 1
	}

	return result
}

// Constrain clamps x into [lo, hi]. Inverted bounds are swapped first.
// A NaN x is returned unchanged.
func Constrain[T cmp.Ordered](x, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}

	return x
}

// ApproxEqual reports |a-b| ≤ max(|a|,|b|)·eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= math.Max(math.Abs(a), math.Abs(b))*eps
}

// Normal1SidedCDF returns P(|Z| ≤ x) for a standard normal Z, e.g. 0.683 at x = 1.
// Negative x yields 0.
func Normal1SidedCDF(x float64) float64 {
	if x <= 0 {
		return 0
	}

	return 2*distuv.UnitNormal.CDF(x) - 1
}

// Normal1SidedQuantile is the inverse of Normal1SidedCDF: the x with
// P(|Z| ≤ x) = p, for p in [0, 1).
func Normal1SidedQuantile(p float64) float64 {
	if p <= 0 {
		return 0
	}

	return distuv.UnitNormal.Quantile((1 + p) / 2)
}

// BiVariateNormalPDF evaluates the density of a bivariate normal with means
// (mx, my), standard deviations (sx, sy) and correlation rho at (x, y).
func BiVariateNormalPDF(x, y, mx, my, sx, sy, rho float64) float64 {
	dx := (x - mx) / sx
	dy := (y - my) / sy
	omr2 := 1 - rho*rho
	z := (dx*dx - 2*rho*dx*dy + dy*dy) / omr2

	return math.Exp(-z/2) / (2 * math.Pi * sx * sy * math.Sqrt(omr2))
}
