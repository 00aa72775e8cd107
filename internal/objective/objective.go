// SPDX-License-Identifier: MIT

// Package objective provides the built-in negative log-likelihoods used by
// the command-line driver and by end-to-end tests.
package objective

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/numeric"
)

// Kinds understood by New.
const (
	KindQuadratic  = "quadratic"
	KindRosenbrock = "rosenbrock"
	KindBimodal    = "bimodal"
	KindCorrelated = "correlated"
)

var (
	// ErrUnknownKind is returned by New for an unsupported kind.
	ErrUnknownKind = errors.New("objective: unknown kind")

	// ErrBadCorrelation indicates a correlation outside (-1, 1).
	ErrBadCorrelation = errors.New("objective: correlation must be in (-1, 1)")

	// ErrDimension indicates a point of the wrong length.
	ErrDimension = errors.New("objective: wrong number of coordinates")
)

// Spec parameterizes the built-in objectives.
type Spec struct {
	Kind        string
	Centre      []float64 // quadratic, correlated: per-coordinate centre (missing entries are 0)
	Width       float64   // quadratic, bimodal, correlated: standard deviation (0 means 1)
	Separation  float64   // bimodal: distance between the two modes
	Scale       float64   // rosenbrock: NLL divisor (0 means 1)
	Correlation float64   // correlated: coefficient between the two coordinates
}

// New returns the objective described by s.
//
// Errors:
//   - ErrUnknownKind, ErrBadCorrelation.
func New(s Spec) (mcmc.ObjectiveFunc, error) {
	width := s.Width
	if width == 0 {
		width = 1
	}
	switch s.Kind {
	case KindQuadratic:
		return Quadratic(s.Centre, width), nil
	case KindRosenbrock:
		scale := s.Scale
		if scale == 0 {
			scale = 1
		}
		return Rosenbrock(scale), nil
	case KindBimodal:
		return Bimodal(s.Separation, width), nil
	case KindCorrelated:
		if !(s.Correlation > -1 && s.Correlation < 1) {
			return nil, fmt.Errorf("%w: %g", ErrBadCorrelation, s.Correlation)
		}
		var c [2]float64
		copy(c[:], s.Centre)
		return Correlated(c[0], c[1], width, s.Correlation), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// Quadratic is the NLL of independent normals: Σ (x_i − c_i)² / (2w²).
func Quadratic(centre []float64, width float64) mcmc.ObjectiveFunc {
	inv := 1 / (2 * width * width)
	return func(_ context.Context, x []float64) (float64, error) {
		s := 0.0
		for i, v := range x {
			c := 0.0
			if i < len(centre) {
				c = centre[i]
			}
			d := v - c
			s += d * d
		}
		return s * inv, nil
	}
}

// Rosenbrock is Σ [100(x_{i+1} − x_i²)² + (1 − x_i)²] / scale, minimal at (1, …, 1).
func Rosenbrock(scale float64) mcmc.ObjectiveFunc {
	return func(_ context.Context, x []float64) (float64, error) {
		s := 0.0
		for i := 0; i+1 < len(x); i++ {
			a := x[i+1] - x[i]*x[i]
			b := 1 - x[i]
			s += 100*a*a + b*b
		}
		return s / scale, nil
	}
}

// Bimodal is, per coordinate, the NLL of an equal mixture of N(−sep/2, w²)
// and N(+sep/2, w²), up to a constant.
func Bimodal(separation, width float64) mcmc.ObjectiveFunc {
	half := separation / 2
	inv := 1 / (2 * width * width)
	return func(_ context.Context, x []float64) (float64, error) {
		terms := make([]float64, 2)
		s := 0.0
		for _, v := range x {
			terms[0] = -(v + half) * (v + half) * inv
			terms[1] = -(v - half) * (v - half) * inv
			s -= floats.LogSumExp(terms) - math.Ln2
		}
		return s, nil
	}
}

// Correlated is the NLL of a bivariate normal centred on (c0, c1) with equal
// widths and correlation rho. Points deep in the tails underflow to +Inf.
//
// Errors:
//   - ErrDimension unless len(x) == 2.
func Correlated(c0, c1, width, rho float64) mcmc.ObjectiveFunc {
	return func(_ context.Context, x []float64) (float64, error) {
		if len(x) != 2 {
			return 0, fmt.Errorf("%w: got %d, want 2", ErrDimension, len(x))
		}
		return -math.Log(numeric.BiVariateNormalPDF(x[0], x[1], c0, c1, width, width, rho)), nil
	}
}
