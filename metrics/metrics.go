// SPDX-License-Identifier: MIT

// Package metrics exports sampler events as Prometheus metrics.
//
// Observer implements mcmc.Observer. Chain labels are the chain index, so
// cardinality is bounded by the number of temperatures.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvmcmc/mcmc"
)

// Namespace prefixes every metric name.
const Namespace = "lvmcmc"

// Observer records sampler events.
type Observer struct {
	steps        *prometheus.CounterVec
	accepts      *prometheus.CounterVec
	acceptProb   *prometheus.HistogramVec
	nll          *prometheus.GaugeVec
	swapAttempts *prometheus.CounterVec
	swapAccepts  *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	scaling      *prometheus.GaugeVec
}

var _ mcmc.Observer = (*Observer)(nil)

// New creates the metrics and registers them with reg.
//
// Errors:
//   - registration errors from reg (e.g. prometheus.AlreadyRegisteredError).
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "chain", Name: "steps_total",
			Help: "Metropolis-Hastings steps taken per chain",
		}, []string{"chain"}),
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "chain", Name: "accepts_total",
			Help: "Accepted proposals per chain",
		}, []string{"chain"}),
		acceptProb: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace, Subsystem: "chain", Name: "acceptance_probability",
			Help:    "Acceptance probability of each proposal",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"chain"}),
		nll: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace, Subsystem: "chain", Name: "nll",
			Help: "Negative log-likelihood of the current point",
		}, []string{"chain"}),
		swapAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "tempering", Name: "swap_attempts_total",
			Help: "Swap attempts between chain and chain+1",
		}, []string{"pair"}),
		swapAccepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "tempering", Name: "swap_accepts_total",
			Help: "Accepted swaps between chain and chain+1",
		}, []string{"pair"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace, Subsystem: "covariance", Name: "cholesky_fallbacks_total",
			Help: "Cholesky failures replaced by the diagonal error matrix",
		}, []string{"chain"}),
		scaling: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace, Subsystem: "chain", Name: "error_scaling",
			Help: "Adapted error scaling per chain",
		}, []string{"chain"}),
	}
	for _, c := range []prometheus.Collector{
		o.steps, o.accepts, o.acceptProb, o.nll, o.swapAttempts, o.swapAccepts, o.fallbacks, o.scaling,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func label(i int) string { return strconv.Itoa(i) }

// ObserveStep implements mcmc.Observer.
func (o *Observer) ObserveStep(ev mcmc.StepEvent) {
	l := label(ev.Chain)
	o.steps.WithLabelValues(l).Inc()
	if ev.Accepted {
		o.accepts.WithLabelValues(l).Inc()
	}
	o.acceptProb.WithLabelValues(l).Observe(ev.Probability)
	o.nll.WithLabelValues(l).Set(ev.NLL)
}

// ObserveSwap implements mcmc.Observer.
func (o *Observer) ObserveSwap(ev mcmc.SwapEvent) {
	l := label(ev.Lower)
	o.swapAttempts.WithLabelValues(l).Inc()
	if ev.Accepted {
		o.swapAccepts.WithLabelValues(l).Inc()
	}
}

// ObserveFallback implements mcmc.Observer.
func (o *Observer) ObserveFallback(ev mcmc.FallbackEvent) {
	o.fallbacks.WithLabelValues(label(ev.Chain)).Inc()
}

// ObserveScaling implements mcmc.Observer.
func (o *Observer) ObserveScaling(ev mcmc.ScalingEvent) {
	o.scaling.WithLabelValues(label(ev.Chain)).Set(ev.Scaling)
}
