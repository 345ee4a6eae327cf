package handlers

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/store"
)

const outcomeOK = "ok"

// StatusMetrics counts status endpoint outcomes.
type StatusMetrics struct {
	checks *prometheus.CounterVec
}

// NewStatusMetrics registers the status counters on reg. Every known outcome
// is pre-initialised so that zero counts are exported.
func NewStatusMetrics(reg prometheus.Registerer) *StatusMetrics {
	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_status_checks_total",
		Help: "Status endpoint invocations by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(checks)

	for _, outcome := range []string{
		outcomeOK,
		store.KindDatabaseMissing.String(),
		store.KindConnectionFailure.String(),
		store.KindQueryFailure.String(),
	} {
		checks.WithLabelValues(outcome)
	}

	return &StatusMetrics{checks: checks}
}

func (m *StatusMetrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(outcome).Inc()
}
