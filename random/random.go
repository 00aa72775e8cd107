// SPDX-License-Identifier: MIT

// Package random centralizes deterministic random generation for the sampler.
//
// Goals:
//   - Determinism: same seed ⇒ identical chains across platforms.
//   - Encapsulation: a single Source interface; no time-based sources hidden anywhere.
//   - Independent streams: Derive creates per-chain generators so chains advanced
//     on different goroutines never share state and stay reproducible.
//
// Concurrency:
//   - *Rand is NOT goroutine-safe. Do not share one across goroutines; derive
//     one stream per worker instead.
package random

import (
	"errors"
	"math/rand/v2"

	"github.com/katalvlaran/lvmcmc/matrix"
)

// DefaultSeed is the fixed seed used when callers pass seed == 0.
const DefaultSeed uint64 = 1

// ErrDimensionMismatch is returned when the mean and the Cholesky factor disagree in size.
var ErrDimensionMismatch = errors.New("random: mean and factor dimension mismatch")

// Source is the random source consumed by the sampler.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64

	// NormFloat64 returns a standard normal draw.
	NormFloat64() float64

	// UniformBool returns true with probability p (p ≤ 0 never, p ≥ 1 always).
	UniformBool(p float64) bool

	// GaussianMultivariate draws x = mean + L·z with z ~ N(0, I), i.e. a sample
	// of N(mean, L·Lᵀ).
	GaussianMultivariate(mean []float64, l *matrix.Lower) ([]float64, error)
}

// Rand is the default Source: a PCG generator from math/rand/v2.
type Rand struct {
	seed uint64
	rng  *rand.Rand
}

var _ Source = (*Rand)(nil)

// New returns a deterministic generator. seed == 0 ⇒ DefaultSeed.
func New(seed uint64) *Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return &Rand{seed: seed, rng: rand.New(rand.NewPCG(seed, mix(seed, 0)))}
}

// Seed returns the effective seed of this stream.
func (r *Rand) Seed() uint64 { return r.seed }

// Derive returns an independent deterministic stream for the given id.
// The parent state is not consumed, so Derive(k) always yields the same
// stream for the same parent seed; streams for different ids are decorrelated.
//
// Complexity: O(1).
func (r *Rand) Derive(stream uint64) *Rand {
	return New(mix(r.seed, stream+1))
}

// mix is a SplitMix64-style finalizer combining a parent seed and a stream id.
// Small changes in inputs produce large, well-distributed output changes.
func mix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return DefaultSeed
	}

	return x
}

// Float64 returns a uniform draw in [0, 1).
func (r *Rand) Float64() float64 { return r.rng.Float64() }

// NormFloat64 returns a standard normal draw.
func (r *Rand) NormFloat64() float64 { return r.rng.NormFloat64() }

// UniformBool returns true with probability p.
func (r *Rand) UniformBool(p float64) bool {
	if p >= 1 {
		return true
	}
	if !(p > 0) {
		return false
	}

	return r.rng.Float64() < p
}

// GaussianMultivariate draws mean + L·z.
//
// Errors:
//   - ErrDimensionMismatch when len(mean) != l.N().
//
// Complexity: O(n²/2).
func (r *Rand) GaussianMultivariate(mean []float64, l *matrix.Lower) ([]float64, error) {
	return gaussianMultivariate(r, mean, l)
}

// gaussianMultivariate is shared by every Source built on NormFloat64.
func gaussianMultivariate(src interface{ NormFloat64() float64 }, mean []float64, l *matrix.Lower) ([]float64, error) {
	if l == nil || l.N() != len(mean) {
		return nil, ErrDimensionMismatch
	}
	z := make([]float64, len(mean))
	for i := range z {
		z[i] = src.NormFloat64()
	}
	x, err := matrix.MatVec(l, z)
	if err != nil {
		return nil, err
	}
	for i := range x {
		x[i] += mean[i]
	}

	return x, nil
}
