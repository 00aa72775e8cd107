// SPDX-License-Identifier: MIT
package mcmc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmcmc/param"
)

var (
	// ErrConfiguration is shared with the param package.
	ErrConfiguration = param.ErrConfiguration

	// ErrNilObjective indicates a missing objective.
	ErrNilObjective = fmt.Errorf("%w: nil objective", ErrConfiguration)

	// ErrInvalidBeta indicates a negative or non-finite inverse temperature.
	ErrInvalidBeta = fmt.Errorf("%w: beta must be finite and non-negative", ErrConfiguration)

	// ErrNotInitialized is returned by Advance before Initialize.
	ErrNotInitialized = errors.New("mcmc: engine not initialized")

	// ErrStopped is returned by every operation after Stop.
	ErrStopped = errors.New("mcmc: engine stopped")

	// ErrBadSwapInterval is the panic message of WithSwapInterval(n < 1).
	ErrBadSwapInterval = errors.New("mcmc: swap interval must be ≥ 1")

	// ErrBadConcurrency is the panic message of WithConcurrency(n < 1).
	ErrBadConcurrency = errors.New("mcmc: concurrency must be ≥ 1")

	// ErrBadAdaptation is the panic message of WithAdaptation with a bad interval or target.
	ErrBadAdaptation = errors.New("mcmc: adaptation needs interval ≥ 1 and target in (0, 1)")
)

// chainErrorf wraps err with the chain index.
func chainErrorf(chain int, err error) error {
	return fmt.Errorf("mcmc: chain %d: %w", chain, err)
}
