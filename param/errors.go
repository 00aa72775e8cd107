// SPDX-License-Identifier: MIT
package param

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the root of every parameter-definition error.
	ErrConfiguration = errors.New("param: invalid configuration")

	// ErrInvertedLimits indicates a lower limit above the upper limit.
	ErrInvertedLimits = fmt.Errorf("%w: lower limit above upper limit", ErrConfiguration)

	// ErrStartOutsideLimits indicates a start value that violates the limits.
	ErrStartOutsideLimits = fmt.Errorf("%w: start value outside limits", ErrConfiguration)

	// ErrEmptyList indicates a List without parameters where one is required.
	ErrEmptyList = fmt.Errorf("%w: empty parameter list", ErrConfiguration)

	// ErrIndexOutOfRange indicates a negative parameter or correlation index.
	ErrIndexOutOfRange = errors.New("param: index out of range")

	// ErrDimensionMismatch indicates a point whose length differs from the List.
	ErrDimensionMismatch = errors.New("param: point dimension mismatch")

	// ErrInvalidCorrelation indicates a NaN correlation value.
	ErrInvalidCorrelation = errors.New("param: correlation must be a number")

	// ErrInvalidScaling indicates a non-finite or non-positive error scaling.
	ErrInvalidScaling = errors.New("param: error scaling must be finite and positive")
)

// LimitError describes a parameter rejected at construction.
type LimitError struct {
	Name         string
	Start        float64
	Lower, Upper Limit
	Err          error // ErrInvertedLimits or ErrStartOutsideLimits
}

// Error implements error.
func (e *LimitError) Error() string {
	return fmt.Sprintf("param: parameter %q (start %g, limits [%s, %s]): %v",
		e.Name, e.Start, e.Lower, e.Upper, e.Err)
}

// Unwrap exposes the sentinel so errors.Is(err, ErrConfiguration) matches.
func (e *LimitError) Unwrap() error { return e.Err }
