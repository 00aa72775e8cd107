// SPDX-License-Identifier: MIT
package config

import (
	"fmt"

	"github.com/katalvlaran/lvmcmc/internal/objective"
	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/param"
)

func limit(v *float64) param.Limit {
	if v == nil {
		return param.NoLimit()
	}

	return param.LimitAt(*v)
}

// BuildList turns the parameter and correlation sections into a param.List.
// A relative error, when set, overrides the absolute one.
func (c RunConfig) BuildList(opts ...param.Option) (*param.List, error) {
	base := []param.Option{param.WithErrorScaling(c.Sampler.ErrorScaling)}
	if c.Sampler.FreeFactorization {
		base = append(base, param.WithFreeFactorization())
	}
	opts = append(base, opts...)
	l := param.NewList(opts...)
	index := make(map[string]int, len(c.Parameters))
	for _, pc := range c.Parameters {
		p, err := param.NewParameter(pc.Name, pc.Start, pc.Error, limit(pc.Lower), limit(pc.Upper), pc.Fixed)
		if err != nil {
			return nil, err
		}
		if pc.RelativeError > 0 {
			p = p.WithRelativeError(pc.RelativeError)
		}
		index[pc.Name] = l.Add(p)
	}
	for _, cr := range c.Correlations {
		a, okA := index[cr.A]
		b, okB := index[cr.B]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: correlation %s/%s names an unknown parameter", ErrInvalid, cr.A, cr.B)
		}
		if err := l.SetCorrelation(a, b, cr.Value); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// EngineOptions maps the sampler section onto engine options.
func (c RunConfig) EngineOptions() ([]mcmc.Option, error) {
	s := c.Sampler
	policy, err := mcmc.ParseLimitPolicy(s.LimitPolicy)
	if err != nil {
		return nil, err
	}
	opts := []mcmc.Option{
		mcmc.WithSeed(s.Seed),
		mcmc.WithBetas(s.Betas...),
		mcmc.WithSwapInterval(s.SwapInterval),
		mcmc.WithProposal(mcmc.GaussianProposal{Policy: policy}),
	}
	if s.Concurrency > 0 {
		opts = append(opts, mcmc.WithConcurrency(s.Concurrency))
	}
	if s.RandomizedStart {
		opts = append(opts, mcmc.WithRandomizedStart())
	}
	if s.Adaptation.Interval > 0 {
		opts = append(opts, mcmc.WithAdaptation(s.Adaptation.Interval, s.Adaptation.Target))
	}

	return opts, nil
}

// BuildObjective returns the configured built-in objective.
func (c RunConfig) BuildObjective() (mcmc.Objective, error) {
	o := c.Objective
	f, err := objective.New(objective.Spec{
		Kind:        o.Kind,
		Centre:      o.Centre,
		Width:       o.Width,
		Separation:  o.Separation,
		Scale:       o.Scale,
		Correlation: o.Correlation,
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}
