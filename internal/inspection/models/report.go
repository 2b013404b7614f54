package models

import (
	"time"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// ReportStatus is the lifecycle state of an inspection report.
type ReportStatus string

const (
	StatusSubmitted ReportStatus = "SUBMITTED"
	StatusReviewed  ReportStatus = "REVIEWED"
)

// ResultItem is one scored checklist line of a submission.
type ResultItem struct {
	ItemID  domain.ItemID `json:"itemId"`
	Score   int           `json:"score"`
	Comment string        `json:"comment,omitempty"`
	Defects []string      `json:"defects,omitempty"`
	Photos  []string      `json:"photos,omitempty"`
}

// Report is a submitted inspection of one location.
//
// Invariants:
//   - Every item id corresponds to an item of the location's assigned form
//   - Every score lies within [0, item max]
//   - Created by an inspector submission; only supervisor review fields change
//     afterwards; never deleted
type Report struct {
	ID                domain.ReportID   `json:"id"`
	ReferenceNumber   string            `json:"referenceNumber"`
	InspectorID       domain.UserID     `json:"inspectorId"`
	LocationID        domain.LocationID `json:"locationId"`
	Date              time.Time         `json:"date"`
	Status            ReportStatus      `json:"status"`
	Items             []ResultItem      `json:"items"`
	SupervisorComment string            `json:"supervisorComment,omitempty"`
	OriginatingTaskID domain.TaskID     `json:"originatingTaskId,omitempty"`
}

// CanReview checks whether the report accepts a supervisor review.
func (r *Report) CanReview() error {
	if r.Status != StatusSubmitted {
		return dErrors.New(dErrors.CodeConflict, "report is already reviewed")
	}
	return nil
}

// ApplyReview records the supervisor verdict. Call CanReview first.
func (r *Report) ApplyReview(comment string) {
	r.Status = StatusReviewed
	r.SupervisorComment = comment
}
