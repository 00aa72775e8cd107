// SPDX-License-Identifier: MIT
package mcmc

// StepEvent describes one chain step.
type StepEvent struct {
	Chain       int
	Beta        float64
	Step        int
	Probability float64 // acceptance probability
	Accepted    bool
	NLL         float64 // NLL of the current point after the step
}

// SwapEvent describes one tempering swap attempt between chains Lower and Lower+1.
type SwapEvent struct {
	Lower       int
	Probability float64
	Accepted    bool
}

// FallbackEvent reports a Cholesky fallback in a chain's parameter list.
type FallbackEvent struct {
	Chain     int
	Parameter int // zero-based index of the failing parameter
	Row       int // 1-based failing row as reported by the factorization
}

// ScalingEvent reports an adapted error scaling.
type ScalingEvent struct {
	Chain          int
	Beta           float64
	AcceptanceRate float64 // over the adaptation window
	Scaling        float64 // new error scaling
}

// Observer receives engine events. Step, swap and scaling events are
// delivered from the goroutine calling Advance, in chain order. Fallback
// events may arrive from chain goroutines, so implementations must be safe
// for concurrent use.
type Observer interface {
	ObserveStep(StepEvent)
	ObserveSwap(SwapEvent)
	ObserveFallback(FallbackEvent)
	ObserveScaling(ScalingEvent)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) ObserveStep(StepEvent)         {}
func (NopObserver) ObserveSwap(SwapEvent)         {}
func (NopObserver) ObserveFallback(FallbackEvent) {}
func (NopObserver) ObserveScaling(ScalingEvent)   {}
