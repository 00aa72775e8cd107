// SPDX-License-Identifier: MIT
package mcmc

// Sample is one recorded state of a chain.
type Sample struct {
	Values []float64 // parameter values, index = parameter ID
	NLL    float64   // cached negative log-likelihood of Values
	Step   int       // step index; the start point is step 0
}

// Chain is the append-only history of one inverse temperature.
// It is written only by the engine; readers must not run concurrently with
// Advance.
type Chain struct {
	beta     float64
	samples  []Sample
	accepted int
	proposed int
}

func newChain(beta float64) *Chain { return &Chain{beta: beta} }

// append stores a copy of values.
func (c *Chain) append(values []float64, nll float64, step int) {
	cp := make([]float64, len(values))
	copy(cp, values)
	c.samples = append(c.samples, Sample{Values: cp, NLL: nll, Step: step})
}

// Beta returns the chain's inverse temperature.
func (c *Chain) Beta() float64 { return c.beta }

// Len returns the number of recorded samples.
func (c *Chain) Len() int { return len(c.samples) }

// At returns sample i. The returned Values must not be modified.
func (c *Chain) At(i int) Sample { return c.samples[i] }

// Last returns the most recent sample and false for an empty chain.
func (c *Chain) Last() (Sample, bool) {
	if len(c.samples) == 0 {
		return Sample{}, false
	}

	return c.samples[len(c.samples)-1], true
}

// Samples returns the recorded samples in order. The slice is a copy; the
// Values inside are shared and must not be modified.
func (c *Chain) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)

	return out
}

// Values returns the trace of parameter p across all samples.
func (c *Chain) Values(p int) []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Values[p]
	}

	return out
}

// Accepted returns the number of accepted proposals.
func (c *Chain) Accepted() int { return c.accepted }

// Proposed returns the number of proposals made.
func (c *Chain) Proposed() int { return c.proposed }

// AcceptanceRate returns Accepted/Proposed, or 0 before the first step.
func (c *Chain) AcceptanceRate() float64 {
	if c.proposed == 0 {
		return 0
	}

	return float64(c.accepted) / float64(c.proposed)
}
