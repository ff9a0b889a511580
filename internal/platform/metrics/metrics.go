package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the registration gate.
type Metrics struct {
	RegistrationOutcomes *prometheus.CounterVec
	AllowlistVerdicts    *prometheus.CounterVec
	AllowlistLatency     prometheus.Histogram
}

// New creates and registers all metrics with reg. Pass prometheus.DefaultRegisterer
// in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regguard_registration_outcomes_total",
			Help: "Registration validation outcomes by error code (success for accepted attempts)",
		}, []string{"code"}),
		AllowlistVerdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "regguard_allowlist_verdicts_total",
			Help: "Domain allowlist check results by verdict",
		}, []string{"verdict"}),
		AllowlistLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "regguard_allowlist_request_duration_seconds",
			Help:    "Latency of calls to the domain allowlist service",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementOutcome counts one terminal registration outcome.
func (m *Metrics) IncrementOutcome(code string) {
	if code == "" {
		code = "success"
	}
	m.RegistrationOutcomes.WithLabelValues(code).Inc()
}

// IncrementVerdict counts one allowlist verdict.
func (m *Metrics) IncrementVerdict(verdict string) {
	m.AllowlistVerdicts.WithLabelValues(verdict).Inc()
}

// ObserveAllowlistLatency records the duration of one allowlist call.
func (m *Metrics) ObserveAllowlistLatency(d time.Duration) {
	m.AllowlistLatency.Observe(d.Seconds())
}
