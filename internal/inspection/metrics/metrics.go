package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the inspection workflow. A nil
// *Metrics is a no-op so unit tests can skip registration.
type Metrics struct {
	ReportsSubmitted prometheus.Counter
	ReportsReviewed  prometheus.Counter
	LowScoreCDRs     prometheus.Counter
}

// New creates and registers the inspection metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ReportsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_reports_submitted_total",
			Help: "Total number of inspection reports submitted",
		}),
		ReportsReviewed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_reports_reviewed_total",
			Help: "Total number of inspection reports reviewed by a supervisor",
		}),
		LowScoreCDRs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_low_score_cdrs_total",
			Help: "Total number of draft CDRs auto-opened by low compliance scores",
		}),
	}
}

func (m *Metrics) IncReportsSubmitted() {
	if m != nil {
		m.ReportsSubmitted.Inc()
	}
}

func (m *Metrics) IncReportsReviewed() {
	if m != nil {
		m.ReportsReviewed.Inc()
	}
}

func (m *Metrics) IncLowScoreCDRs() {
	if m != nil {
		m.LowScoreCDRs.Inc()
	}
}
