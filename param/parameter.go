// SPDX-License-Identifier: MIT
package param

// Parameter describes one dimension of the parameter space.
// It is an immutable value; sampled values live in the sampler's chains.
type Parameter struct {
	name  string
	start float64
	err   float64 // absolute error, the proposal width before scaling
	lower Limit
	upper Limit
	fixed bool
}

// NewParameter validates and builds a Parameter.
//
// Errors (all wrap ErrConfiguration, returned as *LimitError):
//   - ErrInvertedLimits      both limits set and lower > upper.
//   - ErrStartOutsideLimits  start violates a limit (closed interval).
func NewParameter(name string, start, errorHint float64, lower, upper Limit, fixed bool) (Parameter, error) {
	p := Parameter{name: name, start: start, err: errorHint, lower: lower, upper: upper, fixed: fixed}
	lo, hasLo := lower.Value()
	hi, hasHi := upper.Value()
	if hasLo && hasHi && lo > hi {
		return Parameter{}, &LimitError{Name: name, Start: start, Lower: lower, Upper: upper, Err: ErrInvertedLimits}
	}
	if !p.IsInsideLimits(start) {
		return Parameter{}, &LimitError{Name: name, Start: start, Lower: lower, Upper: upper, Err: ErrStartOutsideLimits}
	}

	return p, nil
}

// FixedParameter returns a fixed parameter with zero error and no limits.
func FixedParameter(name string, start float64) Parameter {
	return Parameter{name: name, start: start, fixed: true}
}

// WithRelativeError returns a copy whose absolute error is rel·start.
// A zero start therefore yields a zero error.
func (p Parameter) WithRelativeError(rel float64) Parameter {
	p.err = rel * p.start
	return p
}

// WithError returns a copy with the given absolute error.
func (p Parameter) WithError(abs float64) Parameter {
	p.err = abs
	return p
}

func (p Parameter) Name() string        { return p.name }
func (p Parameter) StartValue() float64 { return p.start }
func (p Parameter) Error() float64      { return p.err }
func (p Parameter) Lower() Limit        { return p.lower }
func (p Parameter) Upper() Limit        { return p.upper }
func (p Parameter) IsFixed() bool       { return p.fixed }

// IsInsideLimits reports lower ≤ v ≤ upper for the limits that are set.
// NaN is outside whenever at least one limit is set.
func (p Parameter) IsInsideLimits(v float64) bool {
	if lo, ok := p.lower.Value(); ok && !(v >= lo) {
		return false
	}
	if hi, ok := p.upper.Value(); ok && !(v <= hi) {
		return false
	}

	return true
}

// ConstrainToLimits clamps v into the limits. Idempotent.
func (p Parameter) ConstrainToLimits(v float64) float64 {
	if lo, ok := p.lower.Value(); ok && v < lo {
		return lo
	}
	if hi, ok := p.upper.Value(); ok && v > hi {
		return hi
	}

	return v
}

// ReflectFromLimits mirrors v about the violated limit: v' = 2·limit − v.
// ok is false when v' violates the opposite limit (v' is still returned).
// A value already inside is returned unchanged with ok = true.
func (p Parameter) ReflectFromLimits(v float64) (float64, bool) {
	if lo, ok := p.lower.Value(); ok && v < lo {
		r := 2*lo - v
		return r, p.IsInsideLimits(r)
	}
	if hi, ok := p.upper.Value(); ok && v > hi {
		r := 2*hi - v
		return r, p.IsInsideLimits(r)
	}

	return v, p.IsInsideLimits(v)
}
