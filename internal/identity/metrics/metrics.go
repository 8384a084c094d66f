package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the verification domain.
type Metrics struct {
	ChecksTotal        *prometheus.CounterVec
	LookupFallbacks    *prometheus.CounterVec
	LookupIndetermined *prometheus.CounterVec
	ResendTotal        *prometheus.CounterVec
}

// New creates and registers all verification metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_verification_checks_total",
			Help: "Verification checks by check kind and resolved answer",
		}, []string{"check", "answer"}),
		LookupFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_lookup_fallbacks_total",
			Help: "Lookups served by the fallback tier after an authoritative failure",
		}, []string{"kind"}),
		LookupIndetermined: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_lookup_indeterminate_total",
			Help: "Lookups where both tiers failed",
		}, []string{"kind"}),
		ResendTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_confirmation_resend_total",
			Help: "Confirmation resend requests by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) RecordCheck(check, answer string) {
	m.ChecksTotal.WithLabelValues(check, answer).Inc()
}

func (m *Metrics) RecordFallback(kind string) {
	m.LookupFallbacks.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordIndeterminate(kind string) {
	m.LookupIndetermined.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordResend(outcome string) {
	m.ResendTotal.WithLabelValues(outcome).Inc()
}
