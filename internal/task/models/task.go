package models

import (
	"time"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// TaskStatus is the stored workflow state of an inspection task. Overdue is
// never stored; it is derived from the due date at read time so a task
// cannot get stuck overdue after the backlog is cleared.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"

	// TaskOverdue only ever appears as an EffectiveStatus result.
	TaskOverdue TaskStatus = "OVERDUE"
)

// Task schedules one inspection of one location by one inspector. The
// targeting fields (location, assignee, due date) are fixed at creation;
// reassignment means completing or abandoning and creating a new task.
type Task struct {
	ID           domain.TaskID       `json:"id"`
	LocationID   domain.LocationID   `json:"locationId"`
	RiskCategory domain.RiskCategory `json:"riskCategory"`
	AssigneeID   domain.UserID       `json:"assigneeId"`
	DueDate      time.Time           `json:"dueDate"`
	Priority     int                 `json:"priority"`
	Status       TaskStatus          `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    domain.UserID       `json:"createdBy"`
	CompletedAt  time.Time           `json:"completedAt,omitzero"`

	// Back-links filled in as the workflow produces artifacts.
	RelatedReportID domain.ReportID `json:"relatedReportId,omitempty"`
	RelatedCDRID    domain.CDRID    `json:"relatedCdrId,omitempty"`
}

// statusOrder encodes the forward-only task flow.
var statusOrder = map[TaskStatus]int{
	TaskPending:    0,
	TaskInProgress: 1,
	TaskCompleted:  2,
}

// CanProgress checks the forward-only status flow. Completed is terminal.
func (t *Task) CanProgress(next TaskStatus) error {
	cur, ok := statusOrder[t.Status]
	nxt, okNext := statusOrder[next]
	if !ok || !okNext {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown task status")
	}
	if t.Status == TaskCompleted {
		return dErrors.New(dErrors.CodeConflict, "task is already completed")
	}
	if nxt <= cur {
		return dErrors.New(dErrors.CodeInvariantViolation, "task status can only move forward")
	}
	return nil
}

// ApplyProgress advances the task. Call CanProgress first.
func (t *Task) ApplyProgress(next TaskStatus, now time.Time) {
	t.Status = next
	if next == TaskCompleted {
		t.CompletedAt = now
	}
}

// EffectiveStatus is the status clients see: an open task past its due date
// reads as overdue without any stored state changing.
func (t *Task) EffectiveStatus(now time.Time) TaskStatus {
	if t.Status != TaskCompleted && now.After(t.DueDate) {
		return TaskOverdue
	}
	return t.Status
}
