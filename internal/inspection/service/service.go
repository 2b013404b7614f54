package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"evsops/internal/audit"
	"evsops/internal/authz"
	"evsops/internal/catalog"
	inspmetrics "evsops/internal/inspection/metrics"
	"evsops/internal/inspection/models"
	"evsops/internal/inspection/scoring"
	"evsops/internal/platform/store"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/sentinel"
	"evsops/pkg/refnum"
	"evsops/pkg/requestcontext"
)

// ReportStore is the persistence boundary for inspection reports.
type ReportStore = store.Collection[models.Report]

// DraftCDROpener opens a draft corrective report when a submission scores
// below the compliance threshold. Implemented by the cdr service.
type DraftCDROpener interface {
	OpenDraftForLowScore(ctx context.Context, report models.Report, score float64) error
}

// TaskLinker attaches the resulting report to the task that scheduled the
// inspection. Implemented by the task service.
type TaskLinker interface {
	AttachReport(ctx context.Context, taskID domain.TaskID, reportID domain.ReportID) error
}

// Service orchestrates the inspection report lifecycle.
type Service struct {
	reports   ReportStore
	catalog   *catalog.Catalog
	threshold float64
	cdrs      DraftCDROpener
	tasks     TaskLinker
	logger    *slog.Logger
	metrics   *inspmetrics.Metrics
	auditor   *audit.Recorder
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithDraftCDROpener(o DraftCDROpener) Option { return func(s *Service) { s.cdrs = o } }
func WithTaskLinker(l TaskLinker) Option         { return func(s *Service) { s.tasks = l } }
func WithMetrics(m *inspmetrics.Metrics) Option  { return func(s *Service) { s.metrics = m } }
func WithAuditor(a *audit.Recorder) Option       { return func(s *Service) { s.auditor = a } }

// New constructs the inspection service. threshold is the compliance
// percentage below which a submission auto-opens a draft CDR.
func New(reports ReportStore, cat *catalog.Catalog, threshold float64, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		reports:   reports,
		catalog:   cat,
		threshold: threshold,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitRequest carries an inspector's checklist submission.
type SubmitRequest struct {
	LocationID        domain.LocationID
	Items             []models.ResultItem
	OriginatingTaskID domain.TaskID
}

// Submit validates and persists a new inspection report, computes its score,
// and opens a draft CDR when the score falls below the threshold.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Report, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionSubmitReport); err != nil {
		return nil, err
	}

	location, ok := s.catalog.LocationByID(req.LocationID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown location")
	}
	form, ok := s.catalog.FormByID(location.FormID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "location has no assigned form")
	}
	if err := validateItems(req.Items, form); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	report := models.Report{
		ID:                domain.NewReportID(),
		ReferenceNumber:   s.nextReference(ctx, now),
		InspectorID:       actor.ID,
		LocationID:        req.LocationID,
		Date:              now,
		Status:            models.StatusSubmitted,
		Items:             req.Items,
		OriginatingTaskID: req.OriginatingTaskID,
	}

	if err := s.reports.Put(ctx, string(report.ID), report); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store report")
	}
	s.metrics.IncReportsSubmitted()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventReportSubmitted,
		report.ReferenceNumber, "")

	score := scoring.Compute(report.Items, form)
	s.logger.InfoContext(ctx, "report submitted",
		"reference", report.ReferenceNumber,
		"location", report.LocationID,
		"score", score,
	)

	// Side effects are independent of the committed report write: a failure
	// here is logged and surfaced through ops channels, never rolled back.
	if score < s.threshold && s.cdrs != nil {
		if err := s.cdrs.OpenDraftForLowScore(ctx, report, score); err != nil {
			s.logger.ErrorContext(ctx, "failed to open draft cdr for low score",
				"reference", report.ReferenceNumber, "score", score, "error", err)
		} else {
			s.metrics.IncLowScoreCDRs()
		}
	}
	if report.OriginatingTaskID != "" && s.tasks != nil {
		if err := s.tasks.AttachReport(ctx, report.OriginatingTaskID, report.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to link report to task",
				"reference", report.ReferenceNumber, "task", report.OriginatingTaskID, "error", err)
		}
	}

	return &report, nil
}

func validateItems(items []models.ResultItem, form catalog.InspectionForm) error {
	if len(items) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "a submission needs at least one scored item")
	}
	seen := make(map[domain.ItemID]bool, len(items))
	for _, item := range items {
		formItem, ok := form.ItemByID(item.ItemID)
		if !ok {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("item %s is not on form %s", item.ItemID, form.ID))
		}
		if item.Score < 0 || item.Score > formItem.MaxScore {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("score for item %s must be within [0,%d]", item.ItemID, formItem.MaxScore))
		}
		if seen[item.ItemID] {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("item %s is scored twice", item.ItemID))
		}
		seen[item.ItemID] = true
	}
	return nil
}

// nextReference numbers the report within the current year. A read failure
// falls back to a timestamp-free sequence start; reference collisions are
// cosmetic, ids are what link entities.
func (s *Service) nextReference(ctx context.Context, now time.Time) string {
	all, err := s.reports.ReadAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "reference sequence read failed", "error", err)
		return refnum.Format("INSP", now, 1)
	}
	refs := make([]string, 0, len(all))
	for _, r := range all {
		refs = append(refs, r.ReferenceNumber)
	}
	return refnum.Next("INSP", now, refs)
}

// Review records the supervisor verdict on a submitted report.
func (s *Service) Review(ctx context.Context, id domain.ReportID, comment string) (*models.Report, error) {
	if err := authz.Require(requestcontext.Actor(ctx), authz.ActionReviewReport); err != nil {
		return nil, err
	}

	report, err := s.reports.Execute(ctx, string(id),
		func(r *models.Report) error { return r.CanReview() },
		func(r *models.Report) { r.ApplyReview(comment) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return nil, err
	}
	s.metrics.IncReportsReviewed()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventReportReviewed,
		report.ReferenceNumber, comment)
	return &report, nil
}

// Get returns one report by id.
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*models.Report, error) {
	report, err := s.reports.Get(ctx, string(id))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read report")
	}
	return &report, nil
}

// List returns every report.
func (s *Service) List(ctx context.Context) ([]models.Report, error) {
	all, err := s.reports.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read reports")
	}
	return all, nil
}

// Score computes the compliance percentage of one report against its
// location's form.
func (s *Service) Score(report models.Report) float64 {
	form, ok := s.catalog.FormForLocation(report.LocationID)
	if !ok {
		return 0
	}
	return scoring.Compute(report.Items, form)
}

// PeriodCompliance returns the mean compliance percentage of all reports
// dated within [from, to).
func (s *Service) PeriodCompliance(ctx context.Context, from, to time.Time) (float64, error) {
	all, err := s.reports.ReadAll(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read reports")
	}
	var window []models.Report
	for _, r := range all {
		if !r.Date.Before(from) && r.Date.Before(to) {
			window = append(window, r)
		}
	}
	return scoring.Mean(window, s.catalog), nil
}

// InspectorStats summarizes one inspector's output over a period.
type InspectorStats struct {
	InspectorID    domain.UserID `json:"inspectorId"`
	Reports        int           `json:"reports"`
	MeanCompliance float64       `json:"meanCompliance"`
}

// StatsByInspector aggregates report counts and mean compliance per inspector
// for reports dated within [from, to).
func (s *Service) StatsByInspector(ctx context.Context, from, to time.Time) ([]InspectorStats, error) {
	all, err := s.reports.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read reports")
	}

	grouped := make(map[domain.UserID][]models.Report)
	var order []domain.UserID
	for _, r := range all {
		if r.Date.Before(from) || !r.Date.Before(to) {
			continue
		}
		if _, seen := grouped[r.InspectorID]; !seen {
			order = append(order, r.InspectorID)
		}
		grouped[r.InspectorID] = append(grouped[r.InspectorID], r)
	}

	stats := make([]InspectorStats, 0, len(order))
	for _, id := range order {
		reports := grouped[id]
		stats = append(stats, InspectorStats{
			InspectorID:    id,
			Reports:        len(reports),
			MeanCompliance: scoring.Mean(reports, s.catalog),
		})
	}
	return stats, nil
}

// LastInspectionDates returns the most recent report date per location.
// Feeds the task scheduler's staleness ranking.
func (s *Service) LastInspectionDates(ctx context.Context) (map[domain.LocationID]time.Time, error) {
	all, err := s.reports.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read reports")
	}
	dates := make(map[domain.LocationID]time.Time)
	for _, r := range all {
		if r.Date.After(dates[r.LocationID]) {
			dates[r.LocationID] = r.Date
		}
	}
	return dates, nil
}
