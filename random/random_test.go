// SPDX-License-Identifier: MIT
package random_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvmcmc/matrix"
	"github.com/katalvlaran/lvmcmc/random"
)

func TestRand_SeedDeterminism(t *testing.T) {
	a, b := random.New(42), random.New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.NormFloat64(), b.NormFloat64())
	}
	assert.Equal(t, random.DefaultSeed, random.New(0).Seed())
}

func TestRand_DeriveIsStableAndIndependent(t *testing.T) {
	parent := random.New(7)
	s1, s1again, s2 := parent.Derive(1), parent.Derive(1), parent.Derive(2)
	assert.Equal(t, s1.Seed(), s1again.Seed())
	assert.NotEqual(t, s1.Seed(), s2.Seed())
	assert.NotEqual(t, s1.Float64(), s2.Float64())
}

func TestRand_UniformBoolEdges(t *testing.T) {
	r := random.New(3)
	for i := 0; i < 50; i++ {
		assert.True(t, r.UniformBool(1))
		assert.True(t, r.UniformBool(2))
		assert.False(t, r.UniformBool(0))
		assert.False(t, r.UniformBool(-1))
		assert.False(t, r.UniformBool(math.NaN()))
	}

	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if r.UniformBool(0.25) {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/n, 0.02)
}

func TestRand_GaussianMultivariateMoments(t *testing.T) {
	// Cov = [[4,2],[2,3]] ⇒ L = [[2,0],[1,√2]].
	l, err := matrix.NewLowerFrom(2, []float64{2, 1, math.Sqrt2})
	require.NoError(t, err)

	r := random.New(11)
	const n = 40000
	xs, ys := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := r.GaussianMultivariate([]float64{1, -1}, l)
		require.NoError(t, err)
		xs[i], ys[i] = v[0], v[1]
	}
	assert.InDelta(t, 1.0, stat.Mean(xs, nil), 0.05)
	assert.InDelta(t, -1.0, stat.Mean(ys, nil), 0.05)
	assert.InDelta(t, 4.0, stat.Variance(xs, nil), 0.15)
	assert.InDelta(t, 3.0, stat.Variance(ys, nil), 0.15)
	assert.InDelta(t, 2.0, stat.Covariance(xs, ys, nil), 0.15)
}

func TestRand_GaussianMultivariateMismatch(t *testing.T) {
	_, err := random.New(1).GaussianMultivariate([]float64{0, 0}, matrix.NewDiagonal([]float64{1}))
	require.ErrorIs(t, err, random.ErrDimensionMismatch)
}

func TestLocked_Concurrent(t *testing.T) {
	src := random.NewLocked(random.New(5))
	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 1000; i++ {
				_ = src.Float64()
				_ = src.UniformBool(0.5)
			}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	v, err := src.GaussianMultivariate([]float64{0}, matrix.NewDiagonal([]float64{0}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, v)
}
