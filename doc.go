// Package lvmcmc is a Markov-chain Monte Carlo toolkit: a Metropolis-Hastings
// sampler with parallel tempering over a bounded, correlated parameter space.
//
// 🚀 What is in the box?
//
//   - Parameters: named values with start points, error hints, limits,
//     fixed flags and a prior correlation matrix
//   - Proposals: correlated Gaussian steps through a cached Cholesky factor,
//     with reflect / constrain / none boundary policies
//   - Tempering: one chain per inverse temperature, adjacent-pair swaps
//   - Adaptation: acceptance-driven error scaling per chain
//   - Summaries: burn-in / thinning views, means, intervals, best point
//
// ✨ Why lvmcmc?
//
//   - Deterministic: one seed reproduces every chain, at any concurrency
//   - Concurrent: chains advance in parallel under a bounded errgroup
//   - Observable: logr logging, Prometheus metrics via an Observer
//
// Packages:
//
//	matrix/    Dense, packed lower-triangular storage, Cholesky
//	numeric/   tolerance comparisons, clamping, normal CDF helpers
//	random/    seedable, splittable random source
//	param/     Parameter, List, covariance and prior
//	mcmc/      the engine: chains, proposals, acceptance, tempering
//	summary/   posterior digests over recorded chains
//	metrics/   Prometheus Observer
//	cmd/lvmcmc YAML-driven command line runner
//
// Quick example:
//
//	l := param.NewList()
//	p, _ := param.NewParameter("mu", 0, 1, param.NoLimit(), param.NoLimit(), false)
//	l.Add(p)
//	m, _ := mcmc.NewMetropolisHastings(l, objective, mcmc.WithBetas(1, 0.5), mcmc.WithSeed(7))
//	_ = m.Run(ctx, 10000)
//	view, _ := summary.NewView(m.PhysicalChain(), 1000, 1)
//
//	go install github.com/katalvlaran/lvmcmc/cmd/lvmcmc@latest
package lvmcmc
