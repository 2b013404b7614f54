// Package audit records who did what to which entity. Mutating services emit
// one event per committed operation; the trail is append-only.
package audit

import (
	"context"
	"log/slog"
	"time"

	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
)

// Category classifies events by their primary purpose.
type Category string

const (
	// CategoryCompliance covers events with contractual significance:
	// CDR finalization, invoice issuance, statement generation.
	CategoryCompliance Category = "compliance"

	// CategoryOperations covers routine workflow events: report submissions,
	// task assignments, status progressions.
	CategoryOperations Category = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  Category      `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	ActorID   domain.UserID `json:"actorId"`
	Action    string        `json:"action"`
	Subject   string        `json:"subject"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
}

const (
	EventReportSubmitted    = "report_submitted"
	EventReportReviewed     = "report_reviewed"
	EventCDRCreated         = "cdr_created"
	EventCDRSubmitted       = "cdr_submitted"
	EventCDRFinalized       = "cdr_finalized"
	EventInvoiceIssued      = "invoice_issued"
	EventInvoiceStatus      = "invoice_status_changed"
	EventStatementGenerated = "statement_generated"
	EventTaskCreated        = "task_created"
	EventTaskProgressed     = "task_progressed"
)

// Store persists the trail.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}

// Recorder builds events from request context and appends them. A nil Recorder
// is a no-op so services need no guards in tests.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one event. Audit failures are logged, never propagated; the
// domain operation has already committed.
func (r *Recorder) Record(ctx context.Context, category Category, action, subject, reason string) {
	if r == nil {
		return
	}
	event := Event{
		Category:  category,
		Timestamp: requestcontext.Now(ctx),
		ActorID:   requestcontext.Actor(ctx).ID,
		Action:    action,
		Subject:   subject,
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := r.store.Append(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "audit append failed",
			"action", action, "subject", subject, "error", err)
	}
}
