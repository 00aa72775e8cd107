// SPDX-License-Identifier: MIT
package summary_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/numeric"
	"github.com/katalvlaran/lvmcmc/param"
	"github.com/katalvlaran/lvmcmc/summary"
)

// doubling steps x by one and keeps y = 2x.
type doubling struct{}

func (doubling) Propose(_ mcmc.ProposalContext, current, next []float64) (float64, error) {
	next[0] = current[0] + 1
	next[1] = 2 * next[0]
	return 0, nil
}

// countingChain returns the list {x, y} and the chain x = 0..n, y = 2x.
// NLL = −x, so every step improves and is accepted.
func countingChain(t *testing.T, n int) (*param.List, *mcmc.Chain) {
	t.Helper()
	l := param.NewList()
	for _, name := range []string{"x", "y"} {
		p, err := param.NewParameter(name, 0, 1, param.NoLimit(), param.NoLimit(), false)
		require.NoError(t, err)
		l.Add(p)
	}
	obj := mcmc.ObjectiveFunc(func(_ context.Context, p []float64) (float64, error) { return -p[0], nil })
	m, err := mcmc.NewMetropolisHastings(l, obj, mcmc.WithProposal(doubling{}))
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background(), n))

	return l, m.PhysicalChain()
}

func TestView_BurnInAndThin(t *testing.T) {
	_, c := countingChain(t, 10)
	v, err := summary.NewView(c, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, []float64{1, 3, 5, 7, 9}, v.Values(0))
	for k, s := range v.Samples() {
		assert.Equal(t, 1+2*k, s.Step)
	}
	assert.Equal(t, 11, c.Len(), "views never modify the chain")

	all, err := summary.NewView(c, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, all.Len())

	empty, err := summary.NewView(c, 50, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	_, ok := empty.Best()
	assert.False(t, ok)
	_, _, err = empty.Interval(0, 0.68)
	assert.ErrorIs(t, err, summary.ErrEmptyView)

	_, err = summary.NewView(c, -1, 1)
	assert.ErrorIs(t, err, summary.ErrBadBurnIn)
	_, err = summary.NewView(c, 0, 0)
	assert.ErrorIs(t, err, summary.ErrBadThin)
}

func TestView_Statistics(t *testing.T) {
	_, c := countingChain(t, 10)
	v, err := summary.NewView(c, 1, 2) // x = 1, 3, 5, 7, 9
	require.NoError(t, err)

	assert.InDelta(t, 5.0, v.Mean(0), 1e-12)
	assert.InDelta(t, 10.0, v.Mean(1), 1e-12)
	assert.InDelta(t, math.Sqrt(10), v.StdDev(0), 1e-12)
	assert.InDelta(t, 1.0, v.Correlation(0, 1), 1e-12)

	lo, hi, err := v.Interval(0, 0.6)
	require.NoError(t, err)
	assert.LessOrEqual(t, lo, hi)
	assert.GreaterOrEqual(t, lo, 1.0)
	assert.LessOrEqual(t, hi, 9.0)
	_, _, err = v.Interval(0, 1)
	assert.ErrorIs(t, err, summary.ErrBadLevel)

	q := numeric.Normal1SidedQuantile(0.9)
	glo, ghi, err := v.GaussianInterval(0, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 5-q*math.Sqrt(10), glo, 1e-9)
	assert.InDelta(t, 5+q*math.Sqrt(10), ghi, 1e-9)
	_, _, err = v.GaussianInterval(0, 0)
	assert.ErrorIs(t, err, summary.ErrBadLevel)

	best, ok := v.Best()
	require.True(t, ok)
	assert.Equal(t, 9, best.Step)
	assert.Equal(t, 1.0, summary.AcceptanceRate(c))
}

func TestSummarize(t *testing.T) {
	l, c := countingChain(t, 10)
	v, err := summary.NewView(c, 0, 1)
	require.NoError(t, err)

	got, err := summary.Summarize(v, l, 0.68)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Name)
	assert.InDelta(t, 5.0, got[0].Mean, 1e-12)
	assert.Equal(t, "y", got[1].Name)
	assert.InDelta(t, 10.0, got[1].Mean, 1e-12)
	half := numeric.Normal1SidedQuantile(0.68) * got[0].StdDev
	assert.InDelta(t, 5.0-half, got[0].GaussLower, 1e-9)
	assert.InDelta(t, 5.0+half, got[0].GaussUpper, 1e-9)

	short := param.NewList()
	short.Add(param.FixedParameter("only", 0))
	_, err = summary.Summarize(v, short, 0.68)
	assert.ErrorIs(t, err, param.ErrDimensionMismatch)

	empty, err := summary.NewView(c, 100, 1)
	require.NoError(t, err)
	_, err = summary.Summarize(empty, l, 0.68)
	assert.ErrorIs(t, err, summary.ErrEmptyView)
}
