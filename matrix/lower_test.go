// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/matrix"
)

func TestLower_AtSetBounds(t *testing.T) {
	l := MustLower(t, 3)
	require.NoError(t, l.Set(2, 1, 5))
	assert.Equal(t, 5.0, MustAt(t, l, 2, 1))

	// Above the diagonal reads as zero.
	assert.Equal(t, 0.0, MustAt(t, l, 1, 2))
	// Writing zero above the diagonal is accepted, anything else is not.
	require.NoError(t, l.Set(0, 2, 0))
	require.ErrorIs(t, l.Set(0, 2, 1), matrix.ErrUpperTriangle)

	_, err := l.At(3, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, l.Set(-1, 0, 1), matrix.ErrOutOfRange)
}

func TestLower_GrowZeroFillsAndKeepsCells(t *testing.T) {
	l := MustLower(t, 2,
		1,
		0.5, 1,
	)
	assert.Equal(t, 2, l.Grow(4))
	assert.Equal(t, 4, l.N())

	assert.Equal(t, 0.5, MustAt(t, l, 1, 0))
	var i, j int
	for i = 2; i < 4; i++ {
		for j = 0; j <= i; j++ {
			assert.Equal(t, 0.0, MustAt(t, l, i, j), "new cell (%d,%d)", i, j)
		}
	}

	// Shrinking is a no-op.
	assert.Equal(t, 0, l.Grow(1))
	assert.Equal(t, 4, l.N())
}

func TestLower_MulVec(t *testing.T) {
	l := MustLower(t, 3,
		1,
		2, 3,
		4, 5, 6,
	)
	y, err := l.MulVec([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5, 15}, y)

	_, err = l.MulVec([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// MatVec dispatches to the packed kernel.
	y2, err := matrix.MatVec(l, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, y, y2)
}

func TestLower_DenseAndSymmetric(t *testing.T) {
	l := MustLower(t, 2,
		1,
		2, 3,
	)
	d := l.Dense()
	assert.Equal(t, 0.0, MustAt(t, d, 0, 1))
	assert.Equal(t, 2.0, MustAt(t, d, 1, 0))

	s := l.Symmetric()
	assert.Equal(t, 2.0, MustAt(t, s, 0, 1))
	assert.Equal(t, 2.0, MustAt(t, s, 1, 0))
	assert.Equal(t, 3.0, MustAt(t, s, 1, 1))

	assert.Nil(t, MustLower(t, 0).Dense())
}

func TestLower_DiagonalAndCopy(t *testing.T) {
	l := matrix.NewDiagonal([]float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2, 3}, l.Diagonal())
	assert.Equal(t, []float64{1, 0, 2, 0, 0, 3}, l.Packed())
	assert.Equal(t, 0.0, MustAt(t, l, 2, 0))

	cp := l.Copy()
	require.NoError(t, cp.Set(0, 0, 42))
	assert.Equal(t, 1.0, MustAt(t, l, 0, 0), "copy must not alias")
	assert.Equal(t, "[1, 0, 0]\n[0, 2, 0]\n[0, 0, 3]\n", l.String())
}

func TestNewLowerFrom_Validation(t *testing.T) {
	_, err := matrix.NewLowerFrom(2, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewLower(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
