// SPDX-License-Identifier: MIT
package mcmc

import (
	"math"
	"runtime"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvmcmc/random"
)

// Adaptation bounds: the per-update factor exp(rate − target) is clamped to
// [MinScalingFactor, MaxScalingFactor].
const (
	MinScalingFactor = 0.1
	MaxScalingFactor = 10.0
)

// DefaultBeta is the inverse temperature of the single default chain.
const DefaultBeta = 1.0

// Options configures a MetropolisHastings engine.
//
//   - Betas: one chain per inverse temperature; empty means {DefaultBeta}.
//   - Proposal: candidate generator; nil means GaussianProposal{}.
//   - Source: root random source. A source with a Derive method gets one
//     derived stream per chain; any other source is shared behind a lock.
//   - RandomizedStart: draw start points around the start values.
//   - SwapInterval: rounds between tempering swap passes (≥ 1).
//   - Concurrency: maximum chains stepped at once (≥ 1).
//   - AdaptInterval: steps between error-scaling updates; 0 disables adaptation.
//   - AdaptTarget: target acceptance rate for adaptation.
type Options struct {
	Betas           []float64
	Proposal        Proposal
	Source          random.Source
	RandomizedStart bool
	SwapInterval    int
	Concurrency     int
	AdaptInterval   int
	AdaptTarget     float64
	Logger          logr.Logger
	Observer        Observer
}

// Option represents a functional option for configuring the engine.
type Option func(*Options)

// DefaultOptions returns the defaults:
//   - Betas: {1.0}; Proposal: GaussianProposal{Policy: LimitNone}.
//   - Source: random.New(random.DefaultSeed).
//   - SwapInterval: 1; Concurrency: GOMAXPROCS.
//   - Adaptation off; Logger: logr.Discard(); Observer: NopObserver.
func DefaultOptions() Options {
	return Options{
		Betas:        []float64{DefaultBeta},
		Proposal:     GaussianProposal{},
		Source:       random.New(random.DefaultSeed),
		SwapInterval: 1,
		Concurrency:  runtime.GOMAXPROCS(0),
		Logger:       logr.Discard(),
		Observer:     NopObserver{},
	}
}

// WithBetas sets the inverse temperatures, one chain each. More than one
// enables parallel tempering. Values are validated by NewMetropolisHastings.
func WithBetas(betas ...float64) Option {
	return func(o *Options) {
		o.Betas = append([]float64(nil), betas...)
	}
}

// WithProposal replaces the proposal strategy.
func WithProposal(p Proposal) Option {
	return func(o *Options) {
		o.Proposal = p
	}
}

// WithSource sets the root random source.
func WithSource(src random.Source) Option {
	return func(o *Options) {
		o.Source = src
	}
}

// WithSeed is WithSource(random.New(seed)).
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Source = random.New(seed)
	}
}

// WithRandomizedStart draws each chain's start point from N(start, Cov).
func WithRandomizedStart() Option {
	return func(o *Options) {
		o.RandomizedStart = true
	}
}

// WithSwapInterval attempts tempering swaps every n rounds.
// Panics if n < 1.
func WithSwapInterval(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadSwapInterval.Error())
		}
		o.SwapInterval = n
	}
}

// WithConcurrency bounds the number of chains stepped in parallel.
// Panics if n < 1.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadConcurrency.Error())
		}
		o.Concurrency = n
	}
}

// WithAdaptation rescales each chain's error scaling every interval steps by
// exp(rate − target), clamped to [MinScalingFactor, MaxScalingFactor].
// Panics if interval < 1 or target is outside (0, 1).
func WithAdaptation(interval int, target float64) Option {
	return func(o *Options) {
		if interval < 1 || !(target > 0 && target < 1) {
			panic(ErrBadAdaptation.Error())
		}
		o.AdaptInterval = interval
		o.AdaptTarget = target
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger logr.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithObserver registers an event observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// validate checks what options cannot reject eagerly.
func (o *Options) validate() error {
	if len(o.Betas) == 0 {
		o.Betas = []float64{DefaultBeta}
	}
	for _, b := range o.Betas {
		if math.IsNaN(b) || math.IsInf(b, 0) || b < 0 {
			return ErrInvalidBeta
		}
	}
	if o.Proposal == nil {
		o.Proposal = GaussianProposal{}
	}
	if o.Source == nil {
		o.Source = random.New(random.DefaultSeed)
	}
	if o.Observer == nil {
		o.Observer = NopObserver{}
	}
	return nil
}
