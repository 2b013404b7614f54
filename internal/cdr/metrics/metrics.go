package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the CDR workflow. A nil *Metrics
// is a no-op so unit tests can skip registration.
type Metrics struct {
	Created   prometheus.Counter
	Submitted prometheus.Counter
	Finalized *prometheus.CounterVec
}

// New creates and registers the CDR metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_cdrs_created_total",
			Help: "Total number of CDRs created (drafts included)",
		}),
		Submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_cdrs_submitted_total",
			Help: "Total number of CDRs submitted for adjudication",
		}),
		Finalized: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evsops_cdrs_finalized_total",
			Help: "Total number of CDRs finalized, by manager decision",
		}, []string{"decision"}),
	}
}

func (m *Metrics) IncCreated() {
	if m != nil {
		m.Created.Inc()
	}
}

func (m *Metrics) IncSubmitted() {
	if m != nil {
		m.Submitted.Inc()
	}
}

func (m *Metrics) IncFinalized(decision string) {
	if m != nil {
		m.Finalized.WithLabelValues(decision).Inc()
	}
}
