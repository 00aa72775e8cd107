// SPDX-License-Identifier: MIT
package mcmc

import "math"

// AcceptanceProbability returns the Metropolis-Hastings acceptance
// probability of moving from a point with (priorC, nllC) to a candidate with
// (priorN, nllN) at inverse temperature beta:
//
//	min(1, e^logRatio · priorN/priorC · e^{beta·(nllC − nllN)})
//
// priorC ≤ 0 forces 1 (escape an unsupported point); otherwise priorN ≤ 0
// forces 0. At beta == 0 the likelihood term is dropped, so infinite or NaN
// NLLs do not matter there. Any other NaN exponent yields 0.
func AcceptanceProbability(logRatio, priorC, priorN, beta, nllC, nllN float64) float64 {
	if !(priorC > 0) {
		return 1
	}
	if !(priorN > 0) {
		return 0
	}
	x := logRatio + math.Log(priorN/priorC)
	if beta != 0 {
		x += beta * (nllC - nllN)
	}

	return expClamp(x)
}

// SwapProbability returns the tempering swap probability of chains i and j:
//
//	min(1, exp((betaI − betaJ) · (nllJ − nllI)))
//
// Equal temperatures always swap, whatever the NLLs.
func SwapProbability(betaI, betaJ, nllI, nllJ float64) float64 {
	if betaI == betaJ {
		return 1
	}

	return expClamp((betaI - betaJ) * (nllJ - nllI))
}

// expClamp returns min(1, e^x), with 0 for NaN.
func expClamp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 0:
		return 1
	default:
		return math.Exp(x)
	}
}
