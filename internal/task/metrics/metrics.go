package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the task scheduler. A nil *Metrics
// is a no-op so unit tests can skip registration.
type Metrics struct {
	Created   prometheus.Counter
	Completed prometheus.Counter
}

// New creates and registers the task metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_tasks_created_total",
			Help: "Total number of inspection tasks created",
		}),
		Completed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_tasks_completed_total",
			Help: "Total number of inspection tasks completed",
		}),
	}
}

func (m *Metrics) IncCreated() {
	if m != nil {
		m.Created.Inc()
	}
}

func (m *Metrics) IncCompleted() {
	if m != nil {
		m.Completed.Inc()
	}
}
