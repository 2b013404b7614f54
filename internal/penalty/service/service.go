package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"evsops/internal/audit"
	"evsops/internal/authz"
	cdrmodels "evsops/internal/cdr/models"
	penmetrics "evsops/internal/penalty/metrics"
	"evsops/internal/penalty/models"
	"evsops/internal/penalty/rates"
	"evsops/internal/platform/store"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/sentinel"
	"evsops/pkg/refnum"
	"evsops/pkg/requestcontext"
)

// InvoiceStore and StatementStore are the persistence boundaries for the
// penalty pipeline.
type (
	InvoiceStore   = store.Collection[models.Invoice]
	StatementStore = store.Collection[models.Statement]
)

// Service prices approved CDRs into invoices and rolls invoices up into
// monthly contractor statements.
type Service struct {
	invoices   InvoiceStore
	statements StatementStore
	contractor string
	logger     *slog.Logger
	metrics    *penmetrics.Metrics
	auditor    *audit.Recorder
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithMetrics(m *penmetrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithAuditor(a *audit.Recorder) Option     { return func(s *Service) { s.auditor = a } }

// New constructs the penalty service. contractor names the party monthly
// statements are issued against.
func New(invoices InvoiceStore, statements StatementStore, contractor string, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		invoices:   invoices,
		statements: statements,
		contractor: contractor,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInvoiceForCDR prices every discrepancy across the CDR's three lists
// and stores the resulting invoice, linked 1:1 to the CDR. Satisfies the cdr
// service's InvoiceCreator. Calling it again for the same CDR returns the
// existing invoice so a retried finalization cannot double-charge.
func (s *Service) CreateInvoiceForCDR(ctx context.Context, cdr cdrmodels.CDR) (domain.InvoiceID, error) {
	if cdr.ManagerDecision != cdrmodels.DecisionPenalty {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "only a penalty decision produces an invoice")
	}

	all, err := s.invoices.ReadAll(ctx)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read invoices")
	}
	for _, inv := range all {
		if inv.CDRID == cdr.ID {
			return inv.ID, nil
		}
	}

	now := requestcontext.Now(ctx)
	discrepancies := cdr.Discrepancies()
	lines := make([]models.InvoiceLine, 0, len(discrepancies))
	amount := 0
	for _, d := range discrepancies {
		lineAmount := rates.Resolve(d)
		lines = append(lines, models.InvoiceLine{Discrepancy: d, Amount: lineAmount})
		amount += lineAmount
	}

	refs := make([]string, 0, len(all))
	for _, inv := range all {
		refs = append(refs, inv.Reference)
	}

	invoice := models.Invoice{
		ID:           domain.NewInvoiceID(),
		Reference:    refnum.Next("INV", now, refs),
		CDRID:        cdr.ID,
		CDRReference: cdr.ReferenceNumber,
		CDRDate:      cdr.OccurredAt,
		Lines:        lines,
		Amount:       amount,
		Status:       models.InvoiceDraft,
		CreatedAt:    now,
		CreatedBy:    requestcontext.Actor(ctx).ID,
	}
	if err := s.invoices.Put(ctx, string(invoice.ID), invoice); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store invoice")
	}
	s.metrics.IncInvoicesCreated(amount)
	s.auditor.Record(ctx, audit.CategoryCompliance, audit.EventInvoiceIssued,
		invoice.Reference, cdr.ReferenceNumber)
	s.logger.InfoContext(ctx, "invoice created",
		"reference", invoice.Reference, "cdr", cdr.ReferenceNumber, "amount", amount)
	return invoice.ID, nil
}

// SetInvoiceStatus advances an invoice along Draft → Issued → Paid/Disputed.
func (s *Service) SetInvoiceStatus(ctx context.Context, id domain.InvoiceID, next models.InvoiceStatus) (*models.Invoice, error) {
	actor := requestcontext.Actor(ctx)
	if err := authz.Require(actor, authz.ActionIssueInvoice); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	invoice, err := s.invoices.Execute(ctx, string(id),
		func(i *models.Invoice) error { return i.CanTransitionTo(next) },
		func(i *models.Invoice) { i.ApplyStatus(next, actor.ID, now) },
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invoice not found")
		}
		return nil, err
	}
	s.auditor.Record(ctx, audit.CategoryCompliance, audit.EventInvoiceStatus,
		invoice.Reference, string(next))
	return &invoice, nil
}

// GetInvoice returns one invoice by id.
func (s *Service) GetInvoice(ctx context.Context, id domain.InvoiceID) (*models.Invoice, error) {
	invoice, err := s.invoices.Get(ctx, string(id))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "invoice not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read invoice")
	}
	return &invoice, nil
}

// ListInvoices returns every invoice.
func (s *Service) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	all, err := s.invoices.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read invoices")
	}
	return all, nil
}

// GenerateStatement builds or regenerates the statement for one contractor
// month. Membership is replaced wholesale from the invoices whose CDR date
// falls in the month, so regenerating with the same invoice set yields the
// same totals; an existing statement keeps its id and reference number.
func (s *Service) GenerateStatement(ctx context.Context, month time.Month, year int) (*models.Statement, error) {
	if err := authz.Require(requestcontext.Actor(ctx), authz.ActionGenerateStatement); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December || year < 2000 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid statement period")
	}

	invoices, err := s.invoices.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read invoices")
	}
	existing, err := s.statements.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read statements")
	}

	now := requestcontext.Now(ctx)
	statement := models.Statement{
		ID:             domain.NewStatementID(),
		Month:          month,
		Year:           year,
		Status:         models.StatementDraft,
		ContractorName: s.contractor,
		GeneratedAt:    now,
	}
	for _, st := range existing {
		if st.ContractorName == s.contractor && st.Month == month && st.Year == year {
			statement = st
			statement.GeneratedAt = now
			break
		}
	}
	if statement.ReferenceNumber == "" {
		refs := make([]string, 0, len(existing))
		for _, st := range existing {
			refs = append(refs, st.ReferenceNumber)
		}
		period := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		statement.ReferenceNumber = refnum.Next("GPS", period, refs)
	}

	items := make([]models.StatementItem, 0)
	for _, inv := range invoices {
		if statement.Covers(inv.CDRDate) {
			items = append(items, models.StatementItem{
				InvoiceID:        inv.ID,
				InvoiceReference: inv.Reference,
				CDRReference:     inv.CDRReference,
				Violations:       len(inv.Lines),
				Amount:           inv.Amount,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].InvoiceReference < items[j].InvoiceReference
	})
	statement.Items = items
	statement.RecomputeTotals()

	if err := s.statements.Put(ctx, string(statement.ID), statement); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store statement")
	}
	s.metrics.IncStatementsGenerated()
	s.auditor.Record(ctx, audit.CategoryCompliance, audit.EventStatementGenerated,
		statement.ReferenceNumber, "")
	return &statement, nil
}

// AddInvoiceToStatement appends one invoice to an existing statement and
// recomputes its totals. Re-adding an invoice already on the statement is a
// conflict; regeneration is the idempotent path.
func (s *Service) AddInvoiceToStatement(ctx context.Context, statementID domain.StatementID, invoiceID domain.InvoiceID) (*models.Statement, error) {
	if err := authz.Require(requestcontext.Actor(ctx), authz.ActionGenerateStatement); err != nil {
		return nil, err
	}

	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	statement, err := s.statements.Execute(ctx, string(statementID),
		func(st *models.Statement) error {
			if !st.Covers(invoice.CDRDate) {
				return dErrors.New(dErrors.CodeInvalidInput, "invoice cdr date falls outside the statement month")
			}
			for _, item := range st.Items {
				if item.InvoiceID == invoice.ID {
					return dErrors.New(dErrors.CodeConflict, "invoice is already on the statement")
				}
			}
			return nil
		},
		func(st *models.Statement) {
			st.Items = append(st.Items, models.StatementItem{
				InvoiceID:        invoice.ID,
				InvoiceReference: invoice.Reference,
				CDRReference:     invoice.CDRReference,
				Violations:       len(invoice.Lines),
				Amount:           invoice.Amount,
			})
			st.RecomputeTotals()
		},
	)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "statement not found")
		}
		return nil, err
	}
	return &statement, nil
}

// GetStatement returns one statement by id.
func (s *Service) GetStatement(ctx context.Context, id domain.StatementID) (*models.Statement, error) {
	statement, err := s.statements.Get(ctx, string(id))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "statement not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read statement")
	}
	return &statement, nil
}

// ListStatements returns every statement.
func (s *Service) ListStatements(ctx context.Context) ([]models.Statement, error) {
	all, err := s.statements.ReadAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read statements")
	}
	return all, nil
}
