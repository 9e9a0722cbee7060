// Package metrics exports API call outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeRateLimited = "rate_limited"
)

// Recorder counts API calls per endpoint and outcome.
type Recorder struct {
	calls *prometheus.CounterVec
}

// NewRecorder registers the API call counter with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	return &Recorder{
		calls: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "biome_api_calls_total",
			Help: "API calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
	}
}

// Observe records one call. It matches the client's MetricsHook signature.
func (r *Recorder) Observe(endpoint string, success, rateLimited bool) {
	outcome := OutcomeFailure
	switch {
	case success:
		outcome = OutcomeSuccess
	case rateLimited:
		outcome = OutcomeRateLimited
	}
	r.calls.WithLabelValues(endpoint, outcome).Inc()
}

// Hook returns Observe as a function value for ClientConfig.MetricsHook.
func (r *Recorder) Hook() func(endpoint string, success, rateLimited bool) {
	return r.Observe
}
