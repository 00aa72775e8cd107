// SPDX-License-Identifier: MIT
package mcmc

import "context"

// Objective evaluates the negative log-likelihood of a point.
// Implementations must be safe for concurrent use when the engine runs
// several chains.
type Objective interface {
	// Evaluate returns NLL(point). point must not be retained or modified.
	Evaluate(ctx context.Context, point []float64) (float64, error)

	// Fluctuates reports whether repeated evaluations of the same point may
	// differ; the engine then re-evaluates the current point every step.
	Fluctuates() bool
}

// ObjectiveFunc adapts a deterministic function to Objective.
type ObjectiveFunc func(ctx context.Context, point []float64) (float64, error)

// Evaluate calls f.
func (f ObjectiveFunc) Evaluate(ctx context.Context, point []float64) (float64, error) {
	return f(ctx, point)
}

// Fluctuates returns false.
func (f ObjectiveFunc) Fluctuates() bool { return false }

type fluctuating struct{ ObjectiveFunc }

func (fluctuating) Fluctuates() bool { return true }

// Fluctuating adapts a noisy function (e.g. a simulation) to Objective.
func Fluctuating(f ObjectiveFunc) Objective { return fluctuating{f} }
