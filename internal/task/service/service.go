package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"evsops/internal/audit"
	"evsops/internal/authz"
	"evsops/internal/catalog"
	"evsops/internal/platform/store"
	taskmetrics "evsops/internal/task/metrics"
	"evsops/internal/task/models"
	"evsops/internal/task/ranking"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/sentinel"
	"evsops/pkg/requestcontext"
)

// TaskStore is the persistence boundary for inspection tasks.
type TaskStore = store.Collection[models.Task]

// InspectionDates supplies the most recent report date per location.
// Implemented by the inspection service.
type InspectionDates interface {
	LastInspectionDates(ctx context.Context) (map[domain.LocationID]time.Time, error)
}

// Service schedules inspection tasks and maintains the risk-ranked worklist
// supervisors create them from.
type Service struct {
	tasks       TaskStore
	catalog     *catalog.Catalog
	inspections InspectionDates
	logger      *slog.Logger
	metrics     *taskmetrics.Metrics
	auditor     *audit.Recorder
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithInspectionDates(d InspectionDates) Option { return func(s *Service) { s.inspections = d } }
func WithMetrics(m *taskmetrics.Metrics) Option    { return func(s *Service) { s.metrics = m } }
func WithAuditor(a *audit.Recorder) Option         { return func(s *Service) { s.auditor = a } }

// New constructs the task service.
func New(tasks TaskStore, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		tasks:   tasks,
		catalog: cat,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries a new task assignment. Location, assignee, and due
// date are fixed for the life of the task.
type CreateRequest struct {
	LocationID domain.LocationID
	AssigneeID domain.UserID
	DueDate    time.Time
	Priority   int
	Notes      string
}

// Create assigns an inspection task.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Task, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionCreateTask); err != nil {
		return nil, err
	}

	location, ok := s.catalog.LocationByID(req.LocationID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown location")
	}
	risk := domain.RiskLow
	if zone, ok := s.catalog.ZoneByID(location.ZoneID); ok {
		risk = zone.RiskCategory
	}
	if req.AssigneeID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a task needs an assigned inspector")
	}
	now := requestcontext.Now(ctx)
	if req.DueDate.IsZero() || req.DueDate.Before(now) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a task needs a due date in the future")
	}

	task := models.Task{
		ID:           domain.NewTaskID(),
		LocationID:   req.LocationID,
		RiskCategory: risk,
		AssigneeID:   req.AssigneeID,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       models.TaskPending,
		Notes:        req.Notes,
		CreatedAt:    now,
		CreatedBy:    actor.ID,
	}
	if err := s.tasks.Put(ctx, string(task.ID), task); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store task")
	}
	s.metrics.IncCreated()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventTaskCreated,
		string(task.ID), string(req.LocationID))
	s.logger.InfoContext(ctx, "task created",
		"task", task.ID, "location", req.LocationID, "assignee", req.AssigneeID)
	return &task, nil
}

// Progress moves a task forward through pending, in progress, completed.
// Inspectors may only progress their own tasks; supervisors and executives
// may progress any.
func (s *Service) Progress(ctx context.Context, id domain.TaskID, next models.TaskStatus) (*models.Task, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionProgressTask); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	task, err := s.tasks.Execute(ctx, string(id),
		func(t *models.Task) error {
			if actor.Role == domain.RoleInspector && t.AssigneeID != actor.ID {
				return dErrors.New(dErrors.CodeForbidden, "task is assigned to another inspector")
			}
			return t.CanProgress(next)
		},
		func(t *models.Task) { t.ApplyProgress(next, now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return nil, err
	}
	if next == models.TaskCompleted {
		s.metrics.IncCompleted()
	}
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventTaskProgressed,
		string(task.ID), string(next))
	return &task, nil
}

// AttachReport back-links the report produced by a scheduled inspection and
// completes the task. Satisfies the inspection service's TaskLinker.
func (s *Service) AttachReport(ctx context.Context, taskID domain.TaskID, reportID domain.ReportID) error {
	now := requestcontext.Now(ctx)
	var completed bool
	_, err := s.tasks.Execute(ctx, string(taskID),
		func(t *models.Task) error {
			if t.RelatedReportID != "" && t.RelatedReportID != reportID {
				return dErrors.New(dErrors.CodeConflict, "task already has a report attached")
			}
			return nil
		},
		func(t *models.Task) {
			t.RelatedReportID = reportID
			if t.Status != models.TaskCompleted {
				t.ApplyProgress(models.TaskCompleted, now)
				completed = true
			}
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return err
	}
	if completed {
		s.metrics.IncCompleted()
	}
	return nil
}

// AttachCDR back-links a corrective report raised from a scheduled
// inspection. Satisfies the cdr service's TaskLinker.
func (s *Service) AttachCDR(ctx context.Context, taskID domain.TaskID, cdrID domain.CDRID) error {
	_, err := s.tasks.Execute(ctx, string(taskID),
		func(t *models.Task) error {
			if t.RelatedCDRID != "" && t.RelatedCDRID != cdrID {
				return dErrors.New(dErrors.CodeConflict, "task already has a cdr attached")
			}
			return nil
		},
		func(t *models.Task) { t.RelatedCDRID = cdrID },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return err
	}
	return nil
}

// Get returns one task by id, with overdue derived against the request time.
func (s *Service) Get(ctx context.Context, id domain.TaskID) (*models.Task, error) {
	task, err := s.tasks.Get(ctx, string(id))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read task")
	}
	task.Status = task.EffectiveStatus(requestcontext.Now(ctx))
	return &task, nil
}

// List returns every task, with overdue derived against the request time.
func (s *Service) List(ctx context.Context) ([]models.Task, error) {
	all, err := s.tasks.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read tasks")
	}
	now := requestcontext.Now(ctx)
	for i := range all {
		all[i].Status = all[i].EffectiveStatus(now)
	}
	return all, nil
}

// Worklist ranks every catalog location by inspection urgency. Without an
// inspection source every location ranks as never inspected.
func (s *Service) Worklist(ctx context.Context) ([]ranking.RankedLocation, error) {
	var dates map[domain.LocationID]time.Time
	if s.inspections != nil {
		var err error
		dates, err = s.inspections.LastInspectionDates(ctx)
		if err != nil {
			return nil, err
		}
	}
	return ranking.Rank(s.catalog, dates, requestcontext.Now(ctx)), nil
}
