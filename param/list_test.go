// SPDX-License-Identifier: MIT
package param_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvmcmc/param"
)

type ListSuite struct {
	suite.Suite
	list *param.List
}

func (s *ListSuite) SetupTest() {
	s.list = param.NewList()
	a, err := param.NewParameter("a", 1, 0.5, param.LimitAt(0), param.LimitAt(10), false)
	s.Require().NoError(err)
	b, err := param.NewParameter("b", -2, 1, param.NoLimit(), param.LimitAt(0), false)
	s.Require().NoError(err)
	s.list.Add(a)
	s.list.Add(b)
}

func (s *ListSuite) TestSetParameterExtends() {
	p := param.FixedParameter("far", 7)
	s.Require().NoError(s.list.SetParameter(4, p))
	s.Equal(5, s.list.Len())
	s.Equal(5, s.list.CorrelationSize())

	for _, i := range []int{2, 3} {
		dummy, err := s.list.Parameter(i)
		s.Require().NoError(err)
		s.True(dummy.IsFixed())
		s.Equal("", dummy.Name())
		s.Equal(0.0, dummy.StartValue())
	}
	got, err := s.list.Parameter(4)
	s.Require().NoError(err)
	s.Equal(p, got)

	s.ErrorIs(s.list.SetParameter(-1, p), param.ErrIndexOutOfRange)
	_, err = s.list.Parameter(5)
	s.ErrorIs(err, param.ErrIndexOutOfRange)

	idx, ok := s.list.IndexOf("far")
	s.True(ok)
	s.Equal(4, idx)
}

func (s *ListSuite) TestCorrelationSymmetryAndClamp() {
	s.Require().NoError(s.list.SetCorrelation(0, 1, 0.3))
	s.Equal(0.3, s.list.Correlation(0, 1))
	s.Equal(0.3, s.list.Correlation(1, 0))

	s.Require().NoError(s.list.SetCorrelation(1, 0, 5))
	s.Equal(1.0, s.list.Correlation(0, 1))
	s.Require().NoError(s.list.SetCorrelation(0, 1, -7))
	s.Equal(-1.0, s.list.Correlation(1, 0))

	s.Equal(1.0, s.list.Correlation(0, 0))
	s.Require().NoError(s.list.SetCorrelation(1, 1, 0.2))
	s.Equal(1.0, s.list.Correlation(1, 1))

	s.ErrorIs(s.list.SetCorrelation(0, 1, math.NaN()), param.ErrInvalidCorrelation)
	s.ErrorIs(s.list.SetCorrelation(-1, 0, 0.1), param.ErrIndexOutOfRange)
	s.Equal(0.0, s.list.Correlation(0, 40))
}

func (s *ListSuite) TestCorrelationGrowIsExplicit() {
	s.Equal(2, s.list.CorrelationSize())

	// Declaring a correlation ahead of its parameters grows only the store.
	s.Require().NoError(s.list.SetCorrelation(5, 1, 0.4))
	s.Equal(6, s.list.CorrelationSize())
	s.Equal(2, s.list.Len())
	s.Equal(0.4, s.list.Correlation(1, 5))
	s.Equal(0.0, s.list.Correlation(4, 3), "new cells are zero-filled")

	s.Equal(0, s.list.Grow(3), "shrinking is a no-op")
	s.Equal(2, s.list.Grow(8))
	s.Equal(8, s.list.CorrelationSize())
	s.Equal(0.4, s.list.Correlation(5, 1), "existing cells survive growth")
}

func (s *ListSuite) TestVersionTracksMutations() {
	v := s.list.Version()
	s.Require().NoError(s.list.SetErrorScaling(2))
	s.Greater(s.list.Version(), v)

	v = s.list.Version()
	s.Require().NoError(s.list.SetCorrelation(0, 1, 0.1))
	s.Greater(s.list.Version(), v)

	v = s.list.Version()
	_ = s.list.Correlation(0, 1)
	_ = s.list.CholeskyDecomp()
	s.Equal(v, s.list.Version(), "reads do not bump the version")
}

func (s *ListSuite) TestErrorsAndScaling() {
	s.Equal(param.DefaultErrorScaling, s.list.ErrorScaling())
	s.Equal([]float64{0.5, 1}, s.list.Errors())
	s.Require().NoError(s.list.SetErrorScaling(3))
	s.Equal([]float64{1.5, 3}, s.list.Errors())
}

func (s *ListSuite) TestCloneIsIndependent() {
	s.Require().NoError(s.list.SetCorrelation(0, 1, 0.5))
	cp := s.list.Clone()
	s.Require().NoError(cp.SetErrorScaling(9))
	s.Require().NoError(cp.SetCorrelation(0, 1, -0.5))
	s.Require().NoError(cp.SetParameter(0, param.FixedParameter("a", 1)))

	s.Equal(1.0, s.list.ErrorScaling())
	s.Equal(0.5, s.list.Correlation(0, 1))
	p, err := s.list.Parameter(0)
	s.Require().NoError(err)
	s.False(p.IsFixed())
}

func (s *ListSuite) TestVectorLimits() {
	s.True(s.list.IsInsideLimits([]float64{0, 0}))
	s.False(s.list.IsInsideLimits([]float64{11, -1}))
	s.False(s.list.IsInsideLimits([]float64{1}))

	pt := []float64{12, 3}
	s.Require().NoError(s.list.ConstrainToLimits(pt))
	s.Equal([]float64{10, 0}, pt)
	s.ErrorIs(s.list.ConstrainToLimits([]float64{1}), param.ErrDimensionMismatch)

	pt = []float64{-2, 1}
	ok, err := s.list.ReflectFromLimits(pt)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]float64{2, -1}, pt)
	s.True(s.list.IsInsideLimits(pt))

	// The only element that needed a reflection overshoots the opposite
	// bound; the in-limit element does not count as a success.
	pt = []float64{25, -1}
	ok, err = s.list.ReflectFromLimits(pt)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal([]float64{-5, -1}, pt)
	s.False(s.list.IsInsideLimits(pt))

	// Nothing to reflect.
	pt = []float64{5, 5}
	ok, err = s.list.ReflectFromLimits(pt)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal([]float64{5, 5}, pt)

	// One successful reflection is enough even when another one fails.
	c, err := param.NewParameter("c", 5, 1, param.LimitAt(0), param.LimitAt(10), false)
	s.Require().NoError(err)
	s.Require().NoError(s.list.SetParameter(2, c))
	pt = []float64{25, -1, -3}
	ok, err = s.list.ReflectFromLimits(pt)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]float64{-5, -1, 3}, pt)

	_, err = s.list.ReflectFromLimits(nil)
	s.ErrorIs(err, param.ErrDimensionMismatch)
}

func (s *ListSuite) TestPrior() {
	s.Equal(1.0, s.list.Prior([]float64{5, -1}))
	s.Equal(0.0, s.list.Prior([]float64{-5, -1}))
	s.Equal(0.0, s.list.Prior([]float64{5}))

	s.Require().NoError(s.list.SetParameter(2, param.FixedParameter("c", 3)))
	s.Equal(1.0, s.list.Prior([]float64{5, -1, 3}))
	s.Equal(0.0, s.list.Prior([]float64{5, -1, 3.5}))
}

func TestListSuite(t *testing.T) {
	suite.Run(t, new(ListSuite))
}

func TestNewList_Options(t *testing.T) {
	l := param.NewList(param.WithErrorScaling(0.5))
	assert.Equal(t, 0.5, l.ErrorScaling())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.CorrelationSize())
	assert.Panics(t, func() { param.NewList(param.WithErrorScaling(math.Inf(1))) })
	assert.Panics(t, func() { param.NewList(param.WithErrorScaling(-1)) })

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -2} {
		assert.ErrorIs(t, l.SetErrorScaling(bad), param.ErrInvalidScaling, "scaling %g", bad)
	}
	assert.Equal(t, 0.5, l.ErrorScaling(), "rejected values leave the scaling unchanged")

	idx := l.Add(param.FixedParameter("k", 1))
	require.Equal(t, 0, idx)
	assert.Equal(t, 1, l.CorrelationSize())
}
