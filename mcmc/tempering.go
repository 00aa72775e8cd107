// SPDX-License-Identifier: MIT
package mcmc

import (
	"math"

	"github.com/katalvlaran/lvmcmc/numeric"
)

// swapPass proposes a swap for every adjacent pair (i, i+1) in order.
// The caller holds m.mu.
func (m *MetropolisHastings) swapPass() []SwapEvent {
	events := make([]SwapEvent, 0, len(m.chains)-1)
	for i := 0; i+1 < len(m.chains); i++ {
		ev := m.swapPair(i)
		m.opts.Observer.ObserveSwap(ev)
		events = append(events, ev)
	}

	return events
}

// swapPair exchanges the current points of chains i and i+1 with
// SwapProbability. Histories are not touched.
func (m *MetropolisHastings) swapPair(i int) SwapEvent {
	m.pairMu[i].Lock()
	defer m.pairMu[i].Unlock()

	a, b := m.chains[i], m.chains[i+1]
	p := SwapProbability(a.beta, b.beta, a.nll, b.nll)
	accepted := p >= 1 || m.swapSrc.UniformBool(p)
	if accepted {
		a.current, b.current = b.current, a.current
		a.nll, b.nll = b.nll, a.nll
		a.logger.V(1).Info("chains swapped", "with", i+1, "probability", p)
	}

	return SwapEvent{Lower: i, Probability: p, Accepted: accepted}
}

// adapt rescales cs's error scaling once its window reaches the interval.
// The caller holds m.mu.
func (m *MetropolisHastings) adapt(cs *chainState) {
	if m.opts.AdaptInterval == 0 || cs.windowSteps < m.opts.AdaptInterval {
		return
	}
	rate := float64(cs.windowAccepted) / float64(cs.windowSteps)
	factor := AdaptationFactor(rate, m.opts.AdaptTarget)
	scaling := cs.params.ErrorScaling() * factor
	cs.windowSteps, cs.windowAccepted = 0, 0
	if err := cs.params.SetErrorScaling(scaling); err != nil {
		cs.logger.Error(err, "error scaling left unchanged", "acceptanceRate", rate, "factor", factor)
		return
	}

	cs.logger.V(1).Info("error scaling adapted", "acceptanceRate", rate, "factor", factor, "scaling", scaling)
	m.opts.Observer.ObserveScaling(ScalingEvent{
		Chain:          cs.index,
		Beta:           cs.beta,
		AcceptanceRate: rate,
		Scaling:        scaling,
	})
}

// AdaptationFactor returns exp(rate − target) clamped to
// [MinScalingFactor, MaxScalingFactor].
func AdaptationFactor(rate, target float64) float64 {
	return numeric.Constrain(math.Exp(rate-target), MinScalingFactor, MaxScalingFactor)
}
