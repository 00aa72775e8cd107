// SPDX-License-Identifier: MIT

// Package mcmc implements a Metropolis-Hastings sampler with optional
// parallel tempering over a param.List.
//
// What:
//
//   - One Chain per inverse temperature β. A single β (the default, {1.0})
//     is plain Metropolis-Hastings; several βs enable tempering.
//   - Every chain owns a Clone of the parameter list, a derived random stream
//     and its current point with the cached negative log-likelihood (NLL).
//
// Step (per chain, Advance):
//
//	x' , r  = Proposal(x)                       r = log transition ratio
//	prior(x) ≤ 0            ⇒ p = 1
//	prior(x') ≤ 0           ⇒ p = 0
//	otherwise                 p = min(1, e^r · prior(x')/prior(x) · e^{β(NLL(x) − NLL(x'))})
//	accept iff p ≥ 1 or U < p; the current point is appended either way.
//
//	If the objective Fluctuates, NLL(x) is re-evaluated before comparing.
//
// Tempering (every SwapInterval rounds, adjacent pairs i, i+1):
//
//	p_swap = min(1, exp((β_i − β_j) · (NLL_j − NLL_i)))
//
//	An accepted swap exchanges current points and NLL caches. Histories stay
//	with their chain.
//
// Concurrency:
//
//	Advance runs one round: chain steps execute concurrently (errgroup, bounded
//	by WithConcurrency), then swaps run serially. Each chain draws from its own
//	stream, so results depend only on the seed, never on scheduling. An engine
//	must not be advanced from several goroutines at once; Advance serializes
//	callers. Cancellation is checked between rounds.
//
// Errors (sentinel):
//
//   - ErrConfiguration   invalid setup (alias of param.ErrConfiguration).
//   - ErrNotInitialized  Advance before Initialize.
//   - ErrStopped         any use after Stop.
//   - Objective errors are returned wrapped with the chain index; errors.Is
//     still matches the original error.
package mcmc
