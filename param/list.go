// SPDX-License-Identifier: MIT
package param

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvmcmc/matrix"
	"github.com/katalvlaran/lvmcmc/numeric"
)

// DefaultErrorScaling is the error scaling of a new List.
const DefaultErrorScaling = 1.0

// FallbackFunc is notified when CholeskyDecomp falls back to the diagonal.
// index is the zero-based parameter whose pivot failed.
type FallbackFunc func(index int, err *matrix.CholeskyError)

// List is an ordered, growable parameter space with a correlation matrix.
//
// The correlation store is a packed lower triangle whose diagonal is ignored
// (always reported as 1). It may be larger than Len(): correlations can be
// declared before their parameters.
type List struct {
	params     []Parameter
	corr       *matrix.Lower
	scaling    float64
	version    uint64
	logger     logr.Logger
	onFallback FallbackFunc
	freeOnly   bool
}

// Option configures a List.
type Option func(*List)

// WithLogger routes numeric-degradation reports to logger.
// The default is logr.Discard().
func WithLogger(logger logr.Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

// checkScaling accepts finite s > 0.
func checkScaling(s float64) error {
	if !(s > 0) || math.IsInf(s, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidScaling, s)
	}

	return nil
}

// WithErrorScaling sets the initial error scaling.
// Panics on a non-finite or non-positive value.
func WithErrorScaling(s float64) Option {
	return func(l *List) {
		if err := checkScaling(s); err != nil {
			panic(err.Error())
		}
		l.scaling = s
	}
}

// WithFallbackHook registers fn, called on every Cholesky fallback.
func WithFallbackHook(fn FallbackFunc) Option {
	return func(l *List) {
		l.onFallback = fn
	}
}

// WithFreeFactorization makes CholeskyDecomp factor only the parameters with
// non-zero scaled error and leave zero rows for the others. By default a
// zero-error parameter has a zero pivot, so the decomposition falls back to
// the diagonal.
func WithFreeFactorization() Option {
	return func(l *List) {
		l.freeOnly = true
	}
}

// NewList returns an empty List.
func NewList(opts ...Option) *List {
	l := &List{
		corr:    &matrix.Lower{},
		scaling: DefaultErrorScaling,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Len returns the number of parameters.
func (l *List) Len() int { return len(l.params) }

// Version increases on every mutation; derived values may be cached against it.
func (l *List) Version() uint64 { return l.version }

// Add appends p and returns its index.
func (l *List) Add(p Parameter) int {
	i := len(l.params)
	l.params = append(l.params, p)
	l.corr.Grow(len(l.params))
	l.version++

	return i
}

// SetParameter stores p at index i. Indices beyond Len() extend the List with
// unnamed fixed parameters at 0 and grow the correlation store.
//
// Errors:
//   - ErrIndexOutOfRange (i < 0).
func (l *List) SetParameter(i int, p Parameter) error {
	if i < 0 {
		return fmt.Errorf("param: SetParameter(%d): %w", i, ErrIndexOutOfRange)
	}
	for len(l.params) <= i {
		l.params = append(l.params, FixedParameter("", 0))
	}
	l.params[i] = p
	l.corr.Grow(len(l.params))
	l.version++

	return nil
}

// Parameter returns the parameter at index i.
//
// Errors:
//   - ErrIndexOutOfRange (i < 0 or i ≥ Len()).
func (l *List) Parameter(i int) (Parameter, error) {
	if i < 0 || i >= len(l.params) {
		return Parameter{}, fmt.Errorf("param: Parameter(%d): %w", i, ErrIndexOutOfRange)
	}

	return l.params[i], nil
}

// Parameters returns a copy of the parameters in index order.
func (l *List) Parameters() []Parameter {
	out := make([]Parameter, len(l.params))
	copy(out, l.params)

	return out
}

// IndexOf returns the index of the first parameter with the given name.
func (l *List) IndexOf(name string) (int, bool) {
	for i, p := range l.params {
		if p.name == name {
			return i, true
		}
	}

	return -1, false
}

// Grow extends the correlation store to n×n, zero-filling new correlations.
// Returns the number of rows added (0 when n ≤ CorrelationSize()).
func (l *List) Grow(n int) int {
	added := l.corr.Grow(n)
	if added > 0 {
		l.version++
	}

	return added
}

// CorrelationSize returns the dimension of the correlation store.
func (l *List) CorrelationSize() int { return l.corr.N() }

// SetCorrelation sets corr[i,j] = corr[j,i] = v clamped to [-1, 1], growing
// the store as needed. i == j only grows the store: the diagonal is always 1.
//
// Errors:
//   - ErrIndexOutOfRange (negative index), ErrInvalidCorrelation (NaN v).
func (l *List) SetCorrelation(i, j int, v float64) error {
	if i < 0 || j < 0 {
		return fmt.Errorf("param: SetCorrelation(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("param: SetCorrelation(%d,%d): %w", i, j, ErrInvalidCorrelation)
	}
	if j > i {
		i, j = j, i
	}
	l.Grow(i + 1)
	if i == j {
		return nil
	}
	if err := l.corr.Set(i, j, numeric.Constrain(v, -1, 1)); err != nil {
		return err
	}
	l.version++

	return nil
}

// Correlation returns corr[i,j]: 1 on the diagonal, 0 for unset cells and
// indices outside the store.
func (l *List) Correlation(i, j int) float64 {
	if i == j {
		return 1
	}
	if j > i {
		i, j = j, i
	}
	if j < 0 || i >= l.corr.N() {
		return 0
	}
	v, _ := l.corr.At(i, j) // bounds checked above

	return v
}

// ErrorScaling returns the current error scaling.
func (l *List) ErrorScaling() float64 { return l.scaling }

// SetErrorScaling replaces the error scaling.
//
// Errors:
//   - ErrInvalidScaling (NaN, ±Inf or s ≤ 0); the scaling is unchanged.
func (l *List) SetErrorScaling(s float64) error {
	if err := checkScaling(s); err != nil {
		return err
	}
	l.scaling = s
	l.version++

	return nil
}

// Errors returns err_i · scaling for every parameter.
func (l *List) Errors() []float64 {
	out := make([]float64, len(l.params))
	for i, p := range l.params {
		out[i] = p.err * l.scaling
	}

	return out
}

// Clone returns a deep copy sharing only the logger and fallback hook.
func (l *List) Clone() *List {
	cp := *l
	cp.params = make([]Parameter, len(l.params))
	copy(cp.params, l.params)
	cp.corr = l.corr.Copy()

	return &cp
}

// SetFallbackHook replaces the Cholesky fallback hook (nil disables it).
func (l *List) SetFallbackHook(fn FallbackFunc) { l.onFallback = fn }

// IsInsideLimits reports whether every element of pt is inside its
// parameter's limits. A length mismatch is never inside.
func (l *List) IsInsideLimits(pt []float64) bool {
	if len(pt) != len(l.params) {
		return false
	}
	for i, p := range l.params {
		if !p.IsInsideLimits(pt[i]) {
			return false
		}
	}

	return true
}

// ConstrainToLimits clamps every element of pt in place.
//
// Errors:
//   - ErrDimensionMismatch (len(pt) != Len()).
func (l *List) ConstrainToLimits(pt []float64) error {
	if len(pt) != len(l.params) {
		return ErrDimensionMismatch
	}
	for i, p := range l.params {
		pt[i] = p.ConstrainToLimits(pt[i])
	}

	return nil
}

// ReflectFromLimits reflects every out-of-limit element of pt in place and
// reports whether at least one element needed a reflection and landed inside
// its limits. A point already inside its limits yields false; use
// IsInsideLimits to check the result as a whole.
//
// Errors:
//   - ErrDimensionMismatch (len(pt) != Len()).
func (l *List) ReflectFromLimits(pt []float64) (bool, error) {
	if len(pt) != len(l.params) {
		return false, ErrDimensionMismatch
	}
	var reflected, needed, ok bool
	for i, p := range l.params {
		needed = !p.IsInsideLimits(pt[i])
		pt[i], ok = p.ReflectFromLimits(pt[i])
		reflected = reflected || (needed && ok)
	}

	return reflected, nil
}

// Prior is the support indicator of pt: 1 when every element is inside its
// limits and fixed parameters sit at their start value, 0 otherwise.
func (l *List) Prior(pt []float64) float64 {
	if len(pt) != len(l.params) {
		return 0
	}
	for i, p := range l.params {
		if p.fixed && pt[i] != p.start {
			return 0
		}
		if !p.IsInsideLimits(pt[i]) {
			return 0
		}
	}

	return 1
}
