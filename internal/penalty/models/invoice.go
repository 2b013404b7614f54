package models

import (
	"time"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// InvoiceStatus is the collection state of a penalty invoice.
type InvoiceStatus string

const (
	InvoiceDraft    InvoiceStatus = "DRAFT"
	InvoiceIssued   InvoiceStatus = "ISSUED"
	InvoicePaid     InvoiceStatus = "PAID"
	InvoiceDisputed InvoiceStatus = "DISPUTED"
)

// InvoiceLine prices one discrepancy recorded on the CDR.
type InvoiceLine struct {
	Discrepancy string `json:"discrepancy"`
	Amount      int    `json:"amount"`
}

// Invoice is the monetary consequence of one penalty-adjudicated CDR.
// Exactly one invoice exists per such CDR, linked by reference number.
type Invoice struct {
	ID           domain.InvoiceID `json:"id"`
	Reference    string           `json:"reference"`
	CDRID        domain.CDRID     `json:"cdrId"`
	CDRReference string           `json:"cdrReference"`
	CDRDate      time.Time        `json:"cdrDate"`
	Lines        []InvoiceLine    `json:"lines"`
	Amount       int              `json:"amount"`
	Status       InvoiceStatus    `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	CreatedBy    domain.UserID    `json:"createdBy,omitempty"`
	ApprovedAt   time.Time        `json:"approvedAt,omitzero"`
	ApprovedBy   domain.UserID    `json:"approvedBy,omitempty"`
}

// statusOrder encodes the forward-only invoice flow. Paid and Disputed are
// both reachable from Issued; neither goes back.
var statusOrder = map[InvoiceStatus]int{
	InvoiceDraft:    0,
	InvoiceIssued:   1,
	InvoicePaid:     2,
	InvoiceDisputed: 2,
}

// CanTransitionTo checks the forward-only status flow.
func (i *Invoice) CanTransitionTo(next InvoiceStatus) error {
	cur, ok := statusOrder[i.Status]
	nxt, okNext := statusOrder[next]
	if !ok || !okNext {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown invoice status")
	}
	if nxt != cur+1 {
		return dErrors.New(dErrors.CodeInvariantViolation, "invoice status can only move forward one step")
	}
	return nil
}

// ApplyStatus advances the invoice. Call CanTransitionTo first.
func (i *Invoice) ApplyStatus(next InvoiceStatus, by domain.UserID, now time.Time) {
	i.Status = next
	if next == InvoiceIssued {
		i.ApprovedAt = now
		i.ApprovedBy = by
	}
}
