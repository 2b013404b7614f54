package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the penalty pipeline. A nil
// *Metrics is a no-op so unit tests can skip registration.
type Metrics struct {
	InvoicesCreated     prometheus.Counter
	PenaltyAmount       prometheus.Counter
	StatementsGenerated prometheus.Counter
}

// New creates and registers the penalty metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		InvoicesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_invoices_created_total",
			Help: "Total number of penalty invoices created from approved CDRs",
		}),
		PenaltyAmount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_penalty_amount_sar_total",
			Help: "Cumulative invoiced penalty amount in SAR",
		}),
		StatementsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evsops_statements_generated_total",
			Help: "Total number of monthly statement generation passes",
		}),
	}
}

func (m *Metrics) IncInvoicesCreated(amount int) {
	if m != nil {
		m.InvoicesCreated.Inc()
		m.PenaltyAmount.Add(float64(amount))
	}
}

func (m *Metrics) IncStatementsGenerated() {
	if m != nil {
		m.StatementsGenerated.Inc()
	}
}
