// SPDX-License-Identifier: MIT

// Package summary computes read-side statistics over sampled chains.
//
// A View selects samples from a chain without copying or mutating it:
// the first burnIn samples are dropped, then every thin-th sample is kept.
// Statistics use gonum/stat.
package summary

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/numeric"
	"github.com/katalvlaran/lvmcmc/param"
)

var (
	// ErrBadBurnIn indicates a negative burn-in.
	ErrBadBurnIn = errors.New("summary: burn-in must be ≥ 0")

	// ErrBadThin indicates a thinning step below 1.
	ErrBadThin = errors.New("summary: thin must be ≥ 1")

	// ErrBadLevel indicates a credible level outside (0, 1).
	ErrBadLevel = errors.New("summary: level must be in (0, 1)")

	// ErrEmptyView indicates a view without samples.
	ErrEmptyView = errors.New("summary: no samples in view")
)

// View is a burn-in/thinning window over a chain.
type View struct {
	chain  *mcmc.Chain
	burnIn int
	thin   int
}

// NewView returns a view skipping burnIn samples and keeping every thin-th one.
//
// Errors:
//   - ErrBadBurnIn, ErrBadThin.
func NewView(c *mcmc.Chain, burnIn, thin int) (View, error) {
	if burnIn < 0 {
		return View{}, ErrBadBurnIn
	}
	if thin < 1 {
		return View{}, ErrBadThin
	}

	return View{chain: c, burnIn: burnIn, thin: thin}, nil
}

// Len returns the number of selected samples.
func (v View) Len() int {
	n := v.chain.Len() - v.burnIn
	if n <= 0 {
		return 0
	}

	return (n + v.thin - 1) / v.thin
}

// index maps a view position to a chain position.
func (v View) index(k int) int { return v.burnIn + k*v.thin }

// Samples returns the selected samples.
func (v View) Samples() []mcmc.Sample {
	out := make([]mcmc.Sample, v.Len())
	for k := range out {
		out[k] = v.chain.At(v.index(k))
	}

	return out
}

// Values returns the selected trace of parameter p.
func (v View) Values(p int) []float64 {
	out := make([]float64, v.Len())
	for k := range out {
		out[k] = v.chain.At(v.index(k)).Values[p]
	}

	return out
}

// Mean returns the sample mean of parameter p (NaN for an empty view).
func (v View) Mean(p int) float64 { return stat.Mean(v.Values(p), nil) }

// StdDev returns the sample standard deviation of parameter p.
func (v View) StdDev(p int) float64 { return stat.StdDev(v.Values(p), nil) }

// Correlation returns the Pearson correlation of parameters i and j.
func (v View) Correlation(i, j int) float64 {
	return stat.Correlation(v.Values(i), v.Values(j), nil)
}

// Interval returns the central credible interval of parameter p holding
// the given probability mass, from empirical quantiles.
//
// Errors:
//   - ErrBadLevel, ErrEmptyView.
func (v View) Interval(p int, level float64) (lo, hi float64, err error) {
	if !(level > 0 && level < 1) {
		return 0, 0, ErrBadLevel
	}
	xs := v.Values(p)
	if len(xs) == 0 {
		return 0, 0, ErrEmptyView
	}
	sort.Float64s(xs)
	lo = stat.Quantile((1-level)/2, stat.Empirical, xs, nil)
	hi = stat.Quantile((1+level)/2, stat.Empirical, xs, nil)

	return lo, hi, nil
}

// GaussianInterval returns mean ± q·σ of parameter p, with q the half-width
// in standard deviations enclosing the given mass of a normal distribution.
//
// Errors:
//   - ErrBadLevel, ErrEmptyView.
func (v View) GaussianInterval(p int, level float64) (lo, hi float64, err error) {
	if !(level > 0 && level < 1) {
		return 0, 0, ErrBadLevel
	}
	xs := v.Values(p)
	if len(xs) == 0 {
		return 0, 0, ErrEmptyView
	}
	mean, sd := stat.MeanStdDev(xs, nil)
	half := numeric.Normal1SidedQuantile(level) * sd

	return mean - half, mean + half, nil
}

// Best returns the selected sample with the lowest NLL.
func (v View) Best() (mcmc.Sample, bool) {
	n := v.Len()
	if n == 0 {
		return mcmc.Sample{}, false
	}
	best := v.chain.At(v.index(0))
	for k := 1; k < n; k++ {
		if s := v.chain.At(v.index(k)); s.NLL < best.NLL {
			best = s
		}
	}

	return best, true
}

// AcceptanceRate returns the fraction of accepted proposals of c.
func AcceptanceRate(c *mcmc.Chain) float64 { return c.AcceptanceRate() }

// ParameterSummary is the per-parameter digest printed by drivers.
type ParameterSummary struct {
	Name   string
	Mean   float64
	StdDev float64
	Lower  float64 // credible interval bounds
	Upper  float64

	GaussLower float64 // mean ± q·σ at the same level
	GaussUpper float64
}

// Summarize digests every parameter of params over v.
//
// Errors:
//   - ErrBadLevel, ErrEmptyView, param.ErrDimensionMismatch.
func Summarize(v View, params *param.List, level float64) ([]ParameterSummary, error) {
	if v.Len() == 0 {
		return nil, ErrEmptyView
	}
	if got := len(v.chain.At(v.index(0)).Values); got != params.Len() {
		return nil, fmt.Errorf("summary: %d values for %d parameters: %w", got, params.Len(), param.ErrDimensionMismatch)
	}
	out := make([]ParameterSummary, params.Len())
	for i, p := range params.Parameters() {
		lo, hi, err := v.Interval(i, level)
		if err != nil {
			return nil, err
		}
		glo, ghi, err := v.GaussianInterval(i, level)
		if err != nil {
			return nil, err
		}
		out[i] = ParameterSummary{
			Name:       p.Name(),
			Mean:       v.Mean(i),
			StdDev:     v.StdDev(i),
			Lower:      lo,
			Upper:      hi,
			GaussLower: glo,
			GaussUpper: ghi,
		}
	}

	return out, nil
}
