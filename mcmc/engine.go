// SPDX-License-Identifier: MIT
package mcmc

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvmcmc/matrix"
	"github.com/katalvlaran/lvmcmc/numeric"
	"github.com/katalvlaran/lvmcmc/param"
	"github.com/katalvlaran/lvmcmc/random"
)

// State is the engine lifecycle stage.
type State int

const (
	// Uninitialized: constructed, Initialize not yet called.
	Uninitialized State = iota
	// Ready: chains seeded, no step taken.
	Ready
	// Sampling: at least one round advanced.
	Sampling
	// Stopped: terminal.
	Stopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Sampling:
		return "sampling"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// deriver is satisfied by sources that can split into per-chain streams.
type deriver interface {
	Derive(stream uint64) *random.Rand
}

// chainState is everything one chain owns.
type chainState struct {
	index   int
	beta    float64
	params  *param.List
	src     random.Source
	chain   *Chain
	current []float64
	nll     float64
	step    int
	logger  logr.Logger

	factor        *matrix.Lower
	factorVersion uint64

	windowSteps, windowAccepted int
}

// choleskyFactor returns the chain's proposal factor, recomputed only after
// its parameter list changed (e.g. an adapted error scaling).
func (cs *chainState) choleskyFactor() *matrix.Lower {
	if v := cs.params.Version(); cs.factor == nil || cs.factorVersion != v {
		cs.factor = cs.params.CholeskyDecomp()
		cs.factorVersion = v
	}

	return cs.factor
}

// StepResult summarizes one Advance round.
type StepResult struct {
	Round    int
	Accepted []bool      // per chain
	Swaps    []SwapEvent // empty when no swap pass ran
}

// MetropolisHastings is the sampling engine. Create it with
// NewMetropolisHastings, then Initialize and Advance (or Run).
type MetropolisHastings struct {
	mu     sync.Mutex
	params *param.List
	obj    Objective
	opts   Options
	logger logr.Logger
	runID  uuid.UUID

	state   State
	round   int
	chains  []*chainState
	pairMu  []sync.Mutex
	swapSrc random.Source
}

// NewMetropolisHastings builds an engine over params and obj.
// params is cloned per chain at Initialize; later changes to it do not
// affect an initialized engine.
//
// Errors:
//   - ErrNilObjective, ErrEmptyList (wrapping ErrConfiguration).
//   - ErrInvalidBeta for negative or non-finite betas.
func NewMetropolisHastings(params *param.List, obj Objective, opts ...Option) (*MetropolisHastings, error) {
	if obj == nil {
		return nil, ErrNilObjective
	}
	if params == nil || params.Len() == 0 {
		return nil, param.ErrEmptyList
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	id := uuid.New()

	return &MetropolisHastings{
		params: params,
		obj:    obj,
		opts:   o,
		runID:  id,
		logger: o.Logger.WithValues("run", id.String()),
	}, nil
}

// RunID identifies this engine in logs.
func (m *MetropolisHastings) RunID() uuid.UUID { return m.runID }

// State returns the lifecycle stage.
func (m *MetropolisHastings) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Stop moves the engine to Stopped. Chains remain readable.
func (m *MetropolisHastings) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Stopped {
		m.logger.Info("sampler stopped", "rounds", m.round)
	}
	m.state = Stopped
}

// Initialize creates one chain per beta, each with its own parameter list
// clone and random stream, and records the start point with its NLL.
// Calling it again discards existing chains.
//
// Errors:
//   - ErrStopped.
//   - ErrStartOutsideLimits (wrapping ErrConfiguration) for an invalid start.
//   - Objective errors, wrapped with the chain index.
func (m *MetropolisHastings) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Stopped {
		return ErrStopped
	}

	n := len(m.opts.Betas)
	chains := make([]*chainState, n)
	root, derive := m.opts.Source.(deriver)
	var lockedSrc random.Source
	if !derive {
		lockedSrc = random.NewLocked(m.opts.Source)
	}
	for i, beta := range m.opts.Betas {
		cs := &chainState{
			index:  i,
			beta:   beta,
			params: m.params.Clone(),
			chain:  newChain(beta),
			logger: m.logger.WithValues("chain", i, "beta", beta),
		}
		if derive {
			cs.src = root.Derive(uint64(i))
		} else {
			cs.src = lockedSrc
		}
		chainIdx := i
		cs.params.SetFallbackHook(func(idx int, err *matrix.CholeskyError) {
			m.opts.Observer.ObserveFallback(FallbackEvent{Chain: chainIdx, Parameter: idx, Row: err.Row})
		})

		start, err := cs.params.StartValues(m.opts.RandomizedStart, cs.src)
		if err != nil {
			return chainErrorf(i, err)
		}
		if cs.params.Prior(start) <= 0 {
			return chainErrorf(i, param.ErrStartOutsideLimits)
		}
		nll, err := m.obj.Evaluate(ctx, start)
		if err != nil {
			return chainErrorf(i, err)
		}
		cs.current, cs.nll = start, nll
		cs.chain.append(start, nll, 0)
		chains[i] = cs
	}
	if derive {
		m.swapSrc = root.Derive(uint64(n))
	} else {
		m.swapSrc = lockedSrc
	}

	m.chains = chains
	m.pairMu = make([]sync.Mutex, max(n-1, 0))
	m.round = 0
	m.state = Ready
	m.logger.Info("sampler initialized",
		"chains", n, "parameters", m.params.Len(), "tempering", n > 1,
		"randomizedStart", m.opts.RandomizedStart)

	return nil
}

// Advance runs one round: a Metropolis-Hastings step on every chain
// (concurrently), then a tempering swap pass if due.
//
// An objective error aborts the round and is returned wrapped with the chain
// index; chains that already finished their step keep it.
//
// Errors:
//   - ErrNotInitialized, ErrStopped, ctx.Err(), objective or proposal errors.
func (m *MetropolisHastings) Advance(ctx context.Context) (StepResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Uninitialized:
		return StepResult{}, ErrNotInitialized
	case Stopped:
		return StepResult{}, ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return StepResult{}, err
	}

	events := make([]StepEvent, len(m.chains))
	if len(m.chains) == 1 {
		ev, err := m.stepChain(ctx, m.chains[0])
		if err != nil {
			return StepResult{}, chainErrorf(0, err)
		}
		events[0] = ev
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(m.opts.Concurrency)
		for i, cs := range m.chains {
			g.Go(func() error {
				ev, err := m.stepChain(gctx, cs)
				if err != nil {
					return chainErrorf(i, err)
				}
				events[i] = ev
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return StepResult{}, err
		}
	}

	m.round++
	m.state = Sampling
	res := StepResult{Round: m.round, Accepted: make([]bool, len(m.chains))}
	for i, ev := range events {
		res.Accepted[i] = ev.Accepted
		m.opts.Observer.ObserveStep(ev)
	}
	for _, cs := range m.chains {
		m.adapt(cs)
	}
	if len(m.chains) > 1 && m.round%m.opts.SwapInterval == 0 {
		res.Swaps = m.swapPass()
	}
	if v := m.logger.V(1); v.Enabled() {
		accepted := 0
		for _, a := range res.Accepted {
			if a {
				accepted++
			}
		}
		v.Info("round complete", "round", m.round, "accepted", accepted, "swaps", len(res.Swaps))
	}

	return res, nil
}

// stepChain performs one Metropolis-Hastings step on cs.
func (m *MetropolisHastings) stepChain(ctx context.Context, cs *chainState) (StepEvent, error) {
	next := make([]float64, len(cs.current))
	pctx := ProposalContext{Chain: cs.index, Params: cs.params, Source: cs.src, Factor: cs.choleskyFactor()}
	logRatio, err := m.opts.Proposal.Propose(pctx, cs.current, next)
	if err != nil {
		return StepEvent{}, err
	}

	priorC := cs.params.Prior(cs.current)
	priorN := cs.params.Prior(next)
	nllN := math.Inf(1)
	var p float64
	switch {
	case !(priorC > 0):
		// Escaping an unsupported point: the candidate is accepted unconditionally.
		p = 1
		if priorN > 0 {
			if nllN, err = m.obj.Evaluate(ctx, next); err != nil {
				return StepEvent{}, err
			}
		}
	case !(priorN > 0):
		p = 0
	default:
		if m.obj.Fluctuates() {
			if cs.nll, err = m.obj.Evaluate(ctx, cs.current); err != nil {
				return StepEvent{}, err
			}
		}
		if nllN, err = m.obj.Evaluate(ctx, next); err != nil {
			return StepEvent{}, err
		}
		p = AcceptanceProbability(logRatio, priorC, priorN, cs.beta, cs.nll, nllN)
	}

	accepted := p >= 1 || cs.src.UniformBool(p)
	if accepted {
		cs.current, cs.nll = next, nllN
		cs.chain.accepted++
		cs.windowAccepted++
	}
	cs.step++
	cs.windowSteps++
	cs.chain.proposed++
	cs.chain.append(cs.current, cs.nll, cs.step)

	return StepEvent{
		Chain:       cs.index,
		Beta:        cs.beta,
		Step:        cs.step,
		Probability: p,
		Accepted:    accepted,
		NLL:         cs.nll,
	}, nil
}

// Run initializes the engine if needed and advances it n rounds, checking
// ctx between rounds. It returns ctx.Err() when cancelled.
func (m *MetropolisHastings) Run(ctx context.Context, n int) error {
	if m.State() == Uninitialized {
		if err := m.Initialize(ctx); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			m.logger.Info("sampling cancelled", "completedRounds", i)
			return err
		}
		if _, err := m.Advance(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Chains returns the chains in beta order.
func (m *MetropolisHastings) Chains() []*Chain {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Chain, len(m.chains))
	for i, cs := range m.chains {
		out[i] = cs.chain
	}

	return out
}

// Chain returns chain i, or nil when out of range.
func (m *MetropolisHastings) Chain(i int) *Chain {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.chains) {
		return nil
	}

	return m.chains[i].chain
}

// ChainParams returns chain i's own parameter list, or nil when out of range.
func (m *MetropolisHastings) ChainParams(i int) *param.List {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.chains) {
		return nil
	}

	return m.chains[i].params
}

// PhysicalChain returns the chain with beta == 1, or else the one with the
// largest beta. Nil before Initialize.
func (m *MetropolisHastings) PhysicalChain() *Chain {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *chainState
	for _, cs := range m.chains {
		if numeric.ApproxEqual(cs.beta, 1, 1e-12) {
			return cs.chain
		}
		if best == nil || cs.beta > best.beta {
			best = cs
		}
	}
	if best == nil {
		return nil
	}

	return best.chain
}
