// SPDX-License-Identifier: MIT
package random

import (
	"sync"

	"github.com/katalvlaran/lvmcmc/matrix"
)

// Locked serializes access to a Source so it can be shared across goroutines.
// Draw order (and therefore results) then depends on scheduling; prefer
// Derive-ed streams when reproducibility matters.
type Locked struct {
	mu  sync.Mutex
	src Source
}

var _ Source = (*Locked)(nil)

// NewLocked wraps src.
func NewLocked(src Source) *Locked { return &Locked{src: src} }

// Float64 implements Source.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.Float64()
}

// NormFloat64 implements Source.
func (l *Locked) NormFloat64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.NormFloat64()
}

// UniformBool implements Source.
func (l *Locked) UniformBool(p float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.UniformBool(p)
}

// GaussianMultivariate implements Source; the whole draw happens under one lock.
func (l *Locked) GaussianMultivariate(mean []float64, f *matrix.Lower) ([]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.src.GaussianMultivariate(mean, f)
}
