// SPDX-License-Identifier: MIT
package param

import (
	"math"
	"strconv"
)

// Limit is an optional bound on a parameter value.
// The zero value is NoLimit().
type Limit struct {
	value float64
	set   bool
}

// NoLimit returns an absent bound.
func NoLimit() Limit { return Limit{} }

// LimitAt returns a bound at v. Non-finite v yields NoLimit(), so ±Inf and
// NaN never act as bounds.
func LimitAt(v float64) Limit {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Limit{}
	}

	return Limit{value: v, set: true}
}

// Value returns the bound and whether it is present.
func (l Limit) Value() (float64, bool) { return l.value, l.set }

// IsSet reports whether the bound is present.
func (l Limit) IsSet() bool { return l.set }

// String renders the bound, or "none".
func (l Limit) String() string {
	if !l.set {
		return "none"
	}

	return strconv.FormatFloat(l.value, 'g', -1, 64)
}
