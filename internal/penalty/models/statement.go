package models

import (
	"time"

	"evsops/pkg/domain"
)

// StatementStatus is the lifecycle state of a monthly statement.
type StatementStatus string

const (
	StatementDraft    StatementStatus = "DRAFT"
	StatementApproved StatementStatus = "APPROVED"
)

// StatementItem references one invoice included in a statement.
type StatementItem struct {
	InvoiceID        domain.InvoiceID `json:"invoiceId"`
	InvoiceReference string           `json:"invoiceReference"`
	CDRReference     string           `json:"cdrReference"`
	Violations       int              `json:"violations"`
	Amount           int              `json:"amount"`
}

// Statement is the monthly per-contractor rollup of penalty invoices.
//
// TotalAmount always equals the sum of item amounts; it is recomputed on every
// membership change and never hand-edited.
type Statement struct {
	ID              domain.StatementID `json:"id"`
	ReferenceNumber string             `json:"referenceNumber"`
	Month           time.Month         `json:"month"`
	Year            int                `json:"year"`
	Status          StatementStatus    `json:"status"`
	ContractorName  string             `json:"contractorName"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	Items           []StatementItem    `json:"items"`
	TotalAmount     int                `json:"totalAmount"`
	TotalViolations int                `json:"totalViolations"`
	ManagerComment  string             `json:"managerComment,omitempty"`
}

// Covers reports whether an invoice's CDR date falls in this statement's
// calendar month.
func (s *Statement) Covers(cdrDate time.Time) bool {
	return cdrDate.Year() == s.Year && cdrDate.Month() == s.Month
}

// RecomputeTotals rederives the aggregate fields from the current items.
// Always called after membership changes; the totals are never trusted
// incrementally.
func (s *Statement) RecomputeTotals() {
	total, violations := 0, 0
	for _, item := range s.Items {
		total += item.Amount
		violations += item.Violations
	}
	s.TotalAmount = total
	s.TotalViolations = violations
}
