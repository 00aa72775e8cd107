// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures for the kernels.
//   - Keep all data finite and well-formed.

package matrix_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmcmc/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the generic At/Set fallback paths.
type hide struct{ matrix.Matrix }

// MustDense builds an r×c Dense from row-major values or fails the test.
func MustDense(t testing.TB, r, c int, values ...float64) *matrix.Dense {
	t.Helper()
	if len(values) == 0 {
		values = make([]float64, r*c)
	}
	d, err := matrix.NewDenseFrom(r, c, values)
	require.NoError(t, err)

	return d
}

// MustLower builds an n×n Lower from packed rows or fails the test.
func MustLower(t testing.TB, n int, packed ...float64) *matrix.Lower {
	t.Helper()
	if len(packed) == 0 {
		packed = make([]float64, n*(n+1)/2)
	}
	l, err := matrix.NewLowerFrom(n, packed)
	require.NoError(t, err)

	return l
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// randomSPD returns a deterministic symmetric positive-definite n×n matrix
// built as B·Bᵀ + n·I from a seeded B.
func randomSPD(t testing.TB, n int, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]float64, n*n)
	for i := range b {
		b[i] = rng.Float64()*2 - 1
	}
	a := MustDense(t, n, n)
	var i, j, k int
	var acc float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			acc = 0
			for k = 0; k < n; k++ {
				acc += b[i*n+k] * b[j*n+k]
			}
			if i == j {
				acc += float64(n)
			}
			require.NoError(t, a.Set(i, j, acc))
		}
	}

	return a
}
