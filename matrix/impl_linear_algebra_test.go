// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/matrix"
)

func TestMatVec(t *testing.T) {
	a := MustDense(t, 2, 2,
		1, 2,
		3, 4,
	)
	for _, in := range []matrix.Matrix{a, hide{a}} {
		y, err := matrix.MatVec(in, []float64{1, -1})
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, -1}, y)
	}
	_, err := matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestReconstruct_RandomSPD(t *testing.T) {
	a := randomSPD(t, 6, 7)
	l, err := matrix.Cholesky(a)
	require.NoError(t, err)
	back, err := matrix.Reconstruct(l)
	require.NoError(t, err)
	ok, err := matrix.AllClose(back, a, 1e-12, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllClose_Policy(t *testing.T) {
	a := MustDense(t, 1, 2, 1, 2)
	b := MustDense(t, 1, 2, 1, 2.1)

	ok, err := matrix.AllClose(a, b, 0, 0.2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, -0.01) // negative tolerance is normalized
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_BoundsAndClone(t *testing.T) {
	d := MustDense(t, 2, 2, 1, 2, 3, 4)
	_, err := d.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, d.Set(0, 5, 1), matrix.ErrOutOfRange)

	cp := d.Clone()
	require.NoError(t, cp.Set(0, 0, 9))
	assert.Equal(t, 1.0, MustAt(t, d, 0, 0))
	assert.Equal(t, "[1, 2]\n[3, 4]\n", d.String())

	_, err = matrix.NewDense(0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
