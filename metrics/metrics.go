// Package metrics holds the Prometheus collectors recorded by the trial harness.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/viant/memfit/model"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

type Metrics struct {
	trials          prometheus.Counter
	failedTrials    prometheus.Counter
	requests        *prometheus.CounterVec
	successFraction *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg.  A nil registerer yields
// working but unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		trials: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfit_trials_total",
			Help: "Total number of completed trials.",
		}),
		failedTrials: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "memfit_trials_failed_total",
			Help: "Total number of trials that ended with an error.",
		}),
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "memfit_requests_total",
			Help: "Total number of fitted requests by placement policy and outcome.",
		}, []string{"policy", "outcome"}),
		successFraction: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memfit_trial_success_fraction",
			Help:    "Fraction of requests a placement policy accepted in one trial.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"policy"}),
	}
}

// ObservePlacement records one policy's outcome on one workload.
func (m *Metrics) ObservePlacement(p *model.Placement) {
	if m == nil || p == nil {
		return
	}
	name := p.Policy.String()
	m.requests.WithLabelValues(name, OutcomeAccepted).Add(float64(p.Accepted))
	m.requests.WithLabelValues(name, OutcomeRejected).Add(float64(p.Submitted - p.Accepted))
	m.successFraction.WithLabelValues(name).Observe(p.Success)
}

// TrialCompleted counts a finished trial.
func (m *Metrics) TrialCompleted() {
	if m == nil {
		return
	}
	m.trials.Inc()
}

// TrialFailed counts a trial that returned an error.
func (m *Metrics) TrialFailed() {
	if m == nil {
		return
	}
	m.failedTrials.Inc()
}
