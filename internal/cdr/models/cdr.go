package models

import (
	"time"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// Status is the lifecycle state of a corrective/disciplinary report.
//
// Draft → Submitted → Approved (terminal) when the manager decides Penalty or
// Warning, or Draft → Submitted → Rejected (terminal) when the decision is
// NoValidCase. No transition skips a state; no transition leaves a terminal
// state. Corrections to a finalized CDR require a new CDR.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

// IncidentType distinguishes first offences from repeats.
type IncidentType string

const (
	IncidentFirst      IncidentType = "FIRST"
	IncidentRepetitive IncidentType = "REPETITIVE"
)

// Decision is the manager's adjudication. Exactly one is set on finalization.
type Decision string

const (
	DecisionPenalty     Decision = "PENALTY"
	DecisionWarning     Decision = "WARNING"
	DecisionNoValidCase Decision = "NO_VALID_CASE"
)

func ParseDecision(raw string) (Decision, error) {
	switch Decision(raw) {
	case DecisionPenalty:
		return DecisionPenalty, nil
	case DecisionWarning:
		return DecisionWarning, nil
	case DecisionNoValidCase:
		return DecisionNoValidCase, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown manager decision")
}

// ServiceType names the contracted service a CDR concerns.
type ServiceType string

const (
	ServiceHousekeeping    ServiceType = "HOUSEKEEPING"
	ServiceWasteManagement ServiceType = "WASTE_MANAGEMENT"
	ServicePestControl     ServiceType = "PEST_CONTROL"
	ServiceLandscaping     ServiceType = "LANDSCAPING"
)

// CDR is a corrective/disciplinary report raised against the contractor.
//
// Mutated only through the Can/Apply transition pairs below; immutable once
// finalized except for the downstream invoice back-link.
type CDR struct {
	ID              domain.CDRID      `json:"id"`
	ReferenceNumber string            `json:"referenceNumber"`
	EmployeeID      domain.UserID     `json:"employeeId"`
	LocationID      domain.LocationID `json:"locationId"`
	OccurredAt      time.Time         `json:"occurredAt"`
	IncidentType    IncidentType      `json:"incidentType"`

	InChargeName  string `json:"inChargeName,omitempty"`
	InChargeID    string `json:"inChargeId,omitempty"`
	InChargeEmail string `json:"inChargeEmail,omitempty"`

	ServiceTypes []ServiceType `json:"serviceTypes,omitempty"`

	// Three independent discrepancy lists, each drawn from its fixed vocabulary.
	ManpowerDiscrepancies  []string `json:"manpowerDiscrepancies,omitempty"`
	MaterialDiscrepancies  []string `json:"materialDiscrepancies,omitempty"`
	EquipmentDiscrepancies []string `json:"equipmentDiscrepancies,omitempty"`

	OnSpotActions []string `json:"onSpotActions,omitempty"`
	ActionPlan    []string `json:"actionPlan,omitempty"`

	StaffComment      string   `json:"staffComment,omitempty"`
	Attachments       []string `json:"attachments,omitempty"`
	EmployeeSignature string   `json:"employeeSignature,omitempty"`

	Status           Status    `json:"status"`
	ManagerDecision  Decision  `json:"managerDecision,omitempty"`
	ManagerComment   string    `json:"managerComment,omitempty"`
	ManagerSignature string    `json:"managerSignature,omitempty"`
	FinalizedDate    time.Time `json:"finalizedDate,omitzero"`

	// Back-links populated by downstream flows.
	RelatedReportID domain.ReportID  `json:"relatedReportId,omitempty"`
	InvoiceID       domain.InvoiceID `json:"invoiceId,omitempty"`
}

// Discrepancies concatenates the three lists in manpower, material, equipment
// order. Penalty resolution iterates this.
func (c *CDR) Discrepancies() []string {
	out := make([]string, 0, len(c.ManpowerDiscrepancies)+len(c.MaterialDiscrepancies)+len(c.EquipmentDiscrepancies))
	out = append(out, c.ManpowerDiscrepancies...)
	out = append(out, c.MaterialDiscrepancies...)
	out = append(out, c.EquipmentDiscrepancies...)
	return out
}

func (c *CDR) hasSubstance() bool {
	return len(c.Discrepancies()) > 0 || c.StaffComment != ""
}

// IsFinalized reports whether the CDR reached a terminal state.
func (c *CDR) IsFinalized() bool {
	return c.Status == StatusApproved || c.Status == StatusRejected
}

// CanSubmit checks the Draft → Submitted transition. A CDR must describe
// something: at least one discrepancy or a staff comment.
func (c *CDR) CanSubmit() error {
	if c.IsFinalized() {
		return dErrors.New(dErrors.CodeConflict, "cdr is already finalized")
	}
	if c.Status != StatusDraft {
		return dErrors.New(dErrors.CodeInvariantViolation, "only a draft cdr can be submitted")
	}
	if c.EmployeeID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "cdr employee is required")
	}
	if c.LocationID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "cdr location is required")
	}
	if !c.hasSubstance() {
		return dErrors.New(dErrors.CodeInvalidInput, "cdr must list a discrepancy or carry a comment")
	}
	return nil
}

// ApplySubmit performs the Draft → Submitted transition. Call CanSubmit first.
func (c *CDR) ApplySubmit(signature string) {
	c.Status = StatusSubmitted
	if signature != "" {
		c.EmployeeSignature = signature
	}
}

// CanFinalize checks the Submitted → terminal transition. A finalization must
// carry exactly one decision, a manager comment, and a manager signature.
// Finalizing an already-finalized CDR is refused without mutation.
func (c *CDR) CanFinalize(decision Decision, comment, signature string) error {
	if c.IsFinalized() {
		return dErrors.New(dErrors.CodeConflict, "cdr is already finalized")
	}
	if c.Status != StatusSubmitted {
		return dErrors.New(dErrors.CodeInvariantViolation, "only a submitted cdr can be finalized")
	}
	if _, err := ParseDecision(string(decision)); err != nil {
		return err
	}
	if comment == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "manager comment is required")
	}
	if signature == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "manager signature is required")
	}
	return nil
}

// ApplyFinalize performs the terminal transition. Once applied these fields
// never change. Call CanFinalize first.
func (c *CDR) ApplyFinalize(decision Decision, comment, signature string, now time.Time) {
	c.ManagerDecision = decision
	c.ManagerComment = comment
	c.ManagerSignature = signature
	c.FinalizedDate = now
	if decision == DecisionNoValidCase {
		c.Status = StatusRejected
	} else {
		c.Status = StatusApproved
	}
}
