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
	cdrmetrics "evsops/internal/cdr/metrics"
	"evsops/internal/cdr/models"
	inspmodels "evsops/internal/inspection/models"
	"evsops/internal/platform/store"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/sentinel"
	"evsops/pkg/refnum"
	"evsops/pkg/requestcontext"
)

// CDRStore is the persistence boundary for corrective reports.
type CDRStore = store.Collection[models.CDR]

// InvoiceCreator turns an approved penalty CDR into exactly one invoice.
// Implemented by the penalty service.
type InvoiceCreator interface {
	CreateInvoiceForCDR(ctx context.Context, cdr models.CDR) (domain.InvoiceID, error)
}

// TaskLinker attaches a resulting CDR to the task that scheduled the
// inspection. Implemented by the task service.
type TaskLinker interface {
	AttachCDR(ctx context.Context, taskID domain.TaskID, cdrID domain.CDRID) error
}

// Service governs the CDR lifecycle: creation, submission, and manager
// adjudication with its monetary side effect.
type Service struct {
	cdrs     CDRStore
	catalog  *catalog.Catalog
	invoices InvoiceCreator
	tasks    TaskLinker
	logger   *slog.Logger
	metrics  *cdrmetrics.Metrics
	auditor  *audit.Recorder
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithInvoiceCreator(c InvoiceCreator) Option { return func(s *Service) { s.invoices = c } }
func WithTaskLinker(l TaskLinker) Option         { return func(s *Service) { s.tasks = l } }
func WithMetrics(m *cdrmetrics.Metrics) Option   { return func(s *Service) { s.metrics = m } }
func WithAuditor(a *audit.Recorder) Option       { return func(s *Service) { s.auditor = a } }

func New(cdrs CDRStore, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{cdrs: cdrs, catalog: cat, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries a new draft CDR.
type CreateRequest struct {
	EmployeeID             domain.UserID
	LocationID             domain.LocationID
	OccurredAt             time.Time
	IncidentType           models.IncidentType
	InChargeName           string
	InChargeID             string
	InChargeEmail          string
	ServiceTypes           []models.ServiceType
	ManpowerDiscrepancies  []string
	MaterialDiscrepancies  []string
	EquipmentDiscrepancies []string
	OnSpotActions          []string
	ActionPlan             []string
	StaffComment           string
	Attachments            []string
	OriginatingTaskID      domain.TaskID
}

// Create opens a draft CDR. The employee defaults to the acting inspector.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.CDR, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionSubmitCDR); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.LocationByID(req.LocationID); !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown location")
	}

	now := requestcontext.Now(ctx)
	employee := req.EmployeeID
	if employee == "" {
		employee = actor.ID
	}
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	incident := req.IncidentType
	if incident == "" {
		incident = models.IncidentFirst
	}

	cdr := models.CDR{
		ID:                     domain.NewCDRID(),
		ReferenceNumber:        s.nextReference(ctx, now),
		EmployeeID:             employee,
		LocationID:             req.LocationID,
		OccurredAt:             occurredAt,
		IncidentType:           incident,
		InChargeName:           req.InChargeName,
		InChargeID:             req.InChargeID,
		InChargeEmail:          req.InChargeEmail,
		ServiceTypes:           req.ServiceTypes,
		ManpowerDiscrepancies:  req.ManpowerDiscrepancies,
		MaterialDiscrepancies:  req.MaterialDiscrepancies,
		EquipmentDiscrepancies: req.EquipmentDiscrepancies,
		OnSpotActions:          req.OnSpotActions,
		ActionPlan:             req.ActionPlan,
		StaffComment:           req.StaffComment,
		Attachments:            req.Attachments,
		Status:                 models.StatusDraft,
	}
	if err := cdr.ValidateVocabulary(); err != nil {
		return nil, err
	}

	if err := s.cdrs.Put(ctx, string(cdr.ID), cdr); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store cdr")
	}
	s.metrics.IncCreated()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventCDRCreated, cdr.ReferenceNumber, "")

	if req.OriginatingTaskID != "" && s.tasks != nil {
		if err := s.tasks.AttachCDR(ctx, req.OriginatingTaskID, cdr.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to link cdr to task",
				"reference", cdr.ReferenceNumber, "task", req.OriginatingTaskID, "error", err)
		}
	}
	return &cdr, nil
}

// OpenDraftForLowScore auto-opens a draft CDR for a low-scoring submission.
// Satisfies the inspection service's DraftCDROpener.
func (s *Service) OpenDraftForLowScore(ctx context.Context, report inspmodels.Report, score float64) error {
	now := requestcontext.Now(ctx)
	cdr := models.CDR{
		ID:              domain.NewCDRID(),
		ReferenceNumber: s.nextReference(ctx, now),
		EmployeeID:      report.InspectorID,
		LocationID:      report.LocationID,
		OccurredAt:      report.Date,
		IncidentType:    models.IncidentFirst,
		ServiceTypes:    []models.ServiceType{models.ServiceHousekeeping},
		StaffComment: fmt.Sprintf("Auto-generated: inspection %s scored %.1f%%, below the compliance threshold.",
			report.ReferenceNumber, score),
		Status:          models.StatusDraft,
		RelatedReportID: report.ID,
	}
	if err := s.cdrs.Put(ctx, string(cdr.ID), cdr); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store auto cdr")
	}
	s.metrics.IncCreated()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventCDRCreated,
		cdr.ReferenceNumber, "low compliance score")
	return nil
}

func (s *Service) nextReference(ctx context.Context, now time.Time) string {
	all, err := s.cdrs.ReadAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cdr reference sequence read failed", "error", err)
		return refnum.Format("CDR", now, 1)
	}
	refs := make([]string, 0, len(all))
	for _, c := range all {
		refs = append(refs, c.ReferenceNumber)
	}
	return refnum.Next("CDR", now, refs)
}

// Submit performs the Draft → Submitted transition.
func (s *Service) Submit(ctx context.Context, id domain.CDRID) (*models.CDR, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionSubmitCDR); err != nil {
		return nil, err
	}

	cdr, err := s.cdrs.Execute(ctx, string(id),
		func(c *models.CDR) error { return c.CanSubmit() },
		func(c *models.CDR) { c.ApplySubmit(actor.Name) },
	)
	if err != nil {
		return nil, translateStoreErr(err, "cdr")
	}
	s.metrics.IncSubmitted()
	s.auditor.Record(ctx, audit.CategoryOperations, audit.EventCDRSubmitted, cdr.ReferenceNumber, "")
	return &cdr, nil
}

// FinalizeRequest carries the manager adjudication.
type FinalizeRequest struct {
	Decision  models.Decision
	Comment   string
	Signature string
}

// Finalize performs the terminal transition. A Penalty decision spawns exactly
// one invoice; Warning and NoValidCase have no monetary side effect. A failed
// invoice write never rolls back the finalization — the gap is logged and the
// invoice can be re-issued from the approved CDR.
func (s *Service) Finalize(ctx context.Context, id domain.CDRID, req FinalizeRequest) (*models.CDR, error) {
	if err := authz.Require(requestcontext.Actor(ctx), authz.ActionFinalizeCDR); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	cdr, err := s.cdrs.Execute(ctx, string(id),
		func(c *models.CDR) error { return c.CanFinalize(req.Decision, req.Comment, req.Signature) },
		func(c *models.CDR) { c.ApplyFinalize(req.Decision, req.Comment, req.Signature, now) },
	)
	if err != nil {
		return nil, translateStoreErr(err, "cdr")
	}
	s.metrics.IncFinalized(string(req.Decision))
	s.auditor.Record(ctx, audit.CategoryCompliance, audit.EventCDRFinalized,
		cdr.ReferenceNumber, string(req.Decision))
	s.logger.InfoContext(ctx, "cdr finalized",
		"reference", cdr.ReferenceNumber, "decision", req.Decision)

	if req.Decision == models.DecisionPenalty && s.invoices != nil {
		invoiceID, err := s.invoices.CreateInvoiceForCDR(ctx, cdr)
		if err != nil {
			s.logger.ErrorContext(ctx, "invoice creation failed after penalty approval",
				"reference", cdr.ReferenceNumber, "error", err)
			return &cdr, nil
		}
		linked, err := s.cdrs.Execute(ctx, string(id),
			func(c *models.CDR) error { return nil },
			func(c *models.CDR) { c.InvoiceID = invoiceID },
		)
		if err != nil {
			s.logger.ErrorContext(ctx, "invoice back-link failed",
				"reference", cdr.ReferenceNumber, "invoice", invoiceID, "error", err)
			return &cdr, nil
		}
		cdr = linked
	}
	return &cdr, nil
}

// Get returns one CDR by id.
func (s *Service) Get(ctx context.Context, id domain.CDRID) (*models.CDR, error) {
	cdr, err := s.cdrs.Get(ctx, string(id))
	if err != nil {
		return nil, translateStoreErr(err, "cdr")
	}
	return &cdr, nil
}

// List returns every CDR.
func (s *Service) List(ctx context.Context) ([]models.CDR, error) {
	all, err := s.cdrs.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read cdrs")
	}
	return all, nil
}

func translateStoreErr(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to access "+what)
}
