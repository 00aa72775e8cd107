// SPDX-License-Identifier: MIT
package mcmc_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/param"
)

// quadratic is NLL = Σ (x_i − centre)² / 2.
func quadratic(centre float64) mcmc.ObjectiveFunc {
	return func(_ context.Context, x []float64) (float64, error) {
		s := 0.0
		for _, v := range x {
			d := v - centre
			s += d * d / 2
		}
		return s, nil
	}
}

// flat is a constant objective.
func flat() mcmc.ObjectiveFunc {
	return func(context.Context, []float64) (float64, error) { return 0, nil }
}

// counting wraps an objective and counts evaluations.
type counting struct {
	mcmc.Objective
	calls atomic.Int64
}

func (c *counting) Evaluate(ctx context.Context, x []float64) (float64, error) {
	c.calls.Add(1)
	return c.Objective.Evaluate(ctx, x)
}

// recorder is an Observer collecting every event.
type recorder struct {
	mu        sync.Mutex
	steps     []mcmc.StepEvent
	swaps     []mcmc.SwapEvent
	fallbacks []mcmc.FallbackEvent
	scalings  []mcmc.ScalingEvent
}

func (r *recorder) ObserveStep(e mcmc.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, e)
}

func (r *recorder) ObserveSwap(e mcmc.SwapEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swaps = append(r.swaps, e)
}

func (r *recorder) ObserveFallback(e mcmc.FallbackEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, e)
}

func (r *recorder) ObserveScaling(e mcmc.ScalingEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scalings = append(r.scalings, e)
}

// singleParam returns a List with one parameter.
func singleParam(t testing.TB, start, errHint float64, lo, hi param.Limit) *param.List {
	t.Helper()
	p, err := param.NewParameter("x", start, errHint, lo, hi, false)
	require.NoError(t, err)
	l := param.NewList()
	l.Add(p)

	return l
}

// newEngine builds and initializes an engine.
func newEngine(t testing.TB, l *param.List, obj mcmc.Objective, opts ...mcmc.Option) *mcmc.MetropolisHastings {
	t.Helper()
	m, err := mcmc.NewMetropolisHastings(l, obj, opts...)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(context.Background()))

	return m
}
