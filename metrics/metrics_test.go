// SPDX-License-Identifier: MIT
package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/metrics"
	"github.com/katalvlaran/lvmcmc/param"
)

func TestObserver_Events(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := metrics.New(reg)
	require.NoError(t, err)

	o.ObserveStep(mcmc.StepEvent{Chain: 0, Accepted: true, Probability: 1, NLL: 2.5})
	o.ObserveStep(mcmc.StepEvent{Chain: 0, Accepted: false, Probability: 0.2, NLL: 2.5})
	o.ObserveStep(mcmc.StepEvent{Chain: 1, Accepted: true, Probability: 0.9, NLL: 7})
	o.ObserveSwap(mcmc.SwapEvent{Lower: 0, Accepted: true, Probability: 1})
	o.ObserveSwap(mcmc.SwapEvent{Lower: 0, Accepted: false, Probability: 0.1})
	o.ObserveFallback(mcmc.FallbackEvent{Chain: 1, Parameter: 3, Row: 4})
	o.ObserveScaling(mcmc.ScalingEvent{Chain: 1, Scaling: 1.7})

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)

	count := func(name string) int {
		n, err := testutil.GatherAndCount(reg, name)
		require.NoError(t, err)
		return n
	}
	assert.Equal(t, 2, count("lvmcmc_chain_steps_total"))
	assert.Equal(t, 1, count("lvmcmc_tempering_swap_attempts_total"))
	assert.Equal(t, 1, count("lvmcmc_covariance_cholesky_fallbacks_total"))

	_, err = metrics.New(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestObserver_WithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := metrics.New(reg)
	require.NoError(t, err)

	l := param.NewList()
	p, err := param.NewParameter("x", 0, 1, param.NoLimit(), param.NoLimit(), false)
	require.NoError(t, err)
	l.Add(p)
	flat := mcmc.ObjectiveFunc(func(context.Context, []float64) (float64, error) { return 0, nil })

	m, err := mcmc.NewMetropolisHastings(l, flat, mcmc.WithBetas(1, 0.5), mcmc.WithObserver(o))
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background(), 25))

	families, err := reg.Gather()
	require.NoError(t, err)
	totals := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				totals[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 50.0, totals["lvmcmc_chain_steps_total"])
	assert.Equal(t, 50.0, totals["lvmcmc_chain_accepts_total"], "flat likelihood accepts everything")
	assert.Equal(t, 25.0, totals["lvmcmc_tempering_swap_attempts_total"])
	assert.Equal(t, 25.0, totals["lvmcmc_tempering_swap_accepts_total"])
}
