// SPDX-License-Identifier: MIT
package mcmc

import (
	"fmt"

	"github.com/katalvlaran/lvmcmc/matrix"
	"github.com/katalvlaran/lvmcmc/param"
	"github.com/katalvlaran/lvmcmc/random"
)

// ProposalContext carries the per-chain state a proposal may use.
type ProposalContext struct {
	Chain  int           // chain index
	Params *param.List   // the chain's own parameter list
	Source random.Source // the chain's random stream
	Factor *matrix.Lower // Cholesky factor of Params' covariance, cached per version
}

// Proposal generates a candidate from the current point.
//
// Propose writes the candidate into next (len(next) == len(current)) and
// returns log(q(current|next) / q(next|current)); symmetric proposals
// return 0. current must not be modified.
type Proposal interface {
	Propose(ctx ProposalContext, current, next []float64) (float64, error)
}

// LimitPolicy selects how GaussianProposal treats candidates outside the limits.
type LimitPolicy int

const (
	// LimitNone leaves candidates as drawn; the prior rejects violations.
	LimitNone LimitPolicy = iota

	// LimitReflect mirrors violations about the violated limit. A reflection
	// that overshoots the opposite limit stays outside and is rejected.
	LimitReflect

	// LimitConstrain clamps violations onto the limit.
	LimitConstrain
)

// String implements fmt.Stringer.
func (p LimitPolicy) String() string {
	switch p {
	case LimitNone:
		return "none"
	case LimitReflect:
		return "reflect"
	case LimitConstrain:
		return "constrain"
	default:
		return fmt.Sprintf("LimitPolicy(%d)", int(p))
	}
}

// ParseLimitPolicy maps "none", "reflect" and "constrain" ("" means none).
func ParseLimitPolicy(s string) (LimitPolicy, error) {
	switch s {
	case "", "none":
		return LimitNone, nil
	case "reflect":
		return LimitReflect, nil
	case "constrain":
		return LimitConstrain, nil
	default:
		return LimitNone, fmt.Errorf("%w: unknown limit policy %q", ErrConfiguration, s)
	}
}

// GaussianProposal draws next ~ N(current, L·Lᵀ) with L the chain's
// Cholesky factor. Fixed parameters keep their current value.
type GaussianProposal struct {
	Policy LimitPolicy
}

var _ Proposal = GaussianProposal{}

// Propose implements Proposal. The transition is symmetric before the limit
// policy is applied, so the log ratio is 0.
func (g GaussianProposal) Propose(ctx ProposalContext, current, next []float64) (float64, error) {
	factor := ctx.Factor
	if factor == nil {
		factor = ctx.Params.CholeskyDecomp()
	}
	drawn, err := ctx.Source.GaussianMultivariate(current, factor)
	if err != nil {
		return 0, fmt.Errorf("mcmc: gaussian proposal: %w", err)
	}
	if len(next) != len(drawn) {
		return 0, fmt.Errorf("mcmc: gaussian proposal: %w", param.ErrDimensionMismatch)
	}
	copy(next, drawn)
	for i, p := range ctx.Params.Parameters() {
		if p.IsFixed() {
			next[i] = current[i]
		}
	}

	switch g.Policy {
	case LimitReflect:
		_, err = ctx.Params.ReflectFromLimits(next)
	case LimitConstrain:
		err = ctx.Params.ConstrainToLimits(next)
	}
	if err != nil {
		return 0, fmt.Errorf("mcmc: gaussian proposal: %w", err)
	}

	return 0, nil
}
