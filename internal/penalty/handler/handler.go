package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"evsops/internal/penalty/models"
	"evsops/internal/penalty/rates"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
	"evsops/pkg/requestcontext"
)

// Service defines the interface for invoice and statement operations.
type Service interface {
	SetInvoiceStatus(ctx context.Context, id domain.InvoiceID, next models.InvoiceStatus) (*models.Invoice, error)
	GetInvoice(ctx context.Context, id domain.InvoiceID) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	GenerateStatement(ctx context.Context, month time.Month, year int) (*models.Statement, error)
	AddInvoiceToStatement(ctx context.Context, statementID domain.StatementID, invoiceID domain.InvoiceID) (*models.Statement, error)
	GetStatement(ctx context.Context, id domain.StatementID) (*models.Statement, error)
	ListStatements(ctx context.Context) ([]models.Statement, error)
}

// Handler wires penalty endpoints to the penalty service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a penalty handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts penalty endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/invoices", h.HandleListInvoices)
	r.Get("/invoices/{id}", h.HandleGetInvoice)
	r.Post("/invoices/{id}/status", h.HandleInvoiceStatus)
	r.Get("/penalties/rates", h.HandleRates)
	r.Post("/statements/generate", h.HandleGenerateStatement)
	r.Get("/statements", h.HandleListStatements)
	r.Get("/statements/{id}", h.HandleGetStatement)
	r.Post("/statements/{id}/invoices", h.HandleAddInvoice)
}

type statusRequest struct {
	Status string `json:"status"`
}

type generateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type addInvoiceRequest struct {
	InvoiceID string `json:"invoiceId"`
}

// HandleListInvoices handles GET /invoices requests.
func (h *Handler) HandleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, invoices)
}

// HandleGetInvoice handles GET /invoices/{id} requests.
func (h *Handler) HandleGetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.service.GetInvoice(r.Context(), domain.InvoiceID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, invoice)
}

// HandleInvoiceStatus handles POST /invoices/{id}/status requests.
func (h *Handler) HandleInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := domain.InvoiceID(chi.URLParam(r, "id"))

	req, err := httputil.Decode[statusRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	invoice, err := h.service.SetInvoiceStatus(ctx, id, models.InvoiceStatus(req.Status))
	if err != nil {
		h.logger.ErrorContext(ctx, "invoice status change failed",
			"request_id", requestcontext.RequestID(ctx),
			"invoice", id,
			"status", req.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, invoice)
}

// HandleRates handles GET /penalties/rates requests: the full violation
// tariff, article by article.
func (h *Handler) HandleRates(w http.ResponseWriter, _ *http.Request) {
	violations := rates.Violations()
	out := make([]map[string]any, 0, len(violations))
	for _, v := range violations {
		out = append(out, map[string]any{
			"code":        v.Code,
			"description": v.Description,
			"article":     v.Article,
			"amount":      v.Article.Amount(),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"violations":    out,
		"defaultAmount": rates.DefaultAmount,
	})
}

// HandleGenerateStatement handles POST /statements/generate requests.
func (h *Handler) HandleGenerateStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[generateRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	statement, err := h.service.GenerateStatement(ctx, time.Month(req.Month), req.Year)
	if err != nil {
		h.logger.ErrorContext(ctx, "statement generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"month", req.Month,
			"year", req.Year,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statement)
}

// HandleListStatements handles GET /statements requests. An optional year
// query parameter filters by statement year.
func (h *Handler) HandleListStatements(w http.ResponseWriter, r *http.Request) {
	statements, err := h.service.ListStatements(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "year must be an integer"))
			return
		}
		filtered := statements[:0]
		for _, st := range statements {
			if st.Year == year {
				filtered = append(filtered, st)
			}
		}
		statements = filtered
	}
	httputil.WriteJSON(w, http.StatusOK, statements)
}

// HandleGetStatement handles GET /statements/{id} requests.
func (h *Handler) HandleGetStatement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.service.GetStatement(r.Context(), domain.StatementID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statement)
}

// HandleAddInvoice handles POST /statements/{id}/invoices requests.
func (h *Handler) HandleAddInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := domain.StatementID(chi.URLParam(r, "id"))

	req, err := httputil.Decode[addInvoiceRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	statement, err := h.service.AddInvoiceToStatement(ctx, id, domain.InvoiceID(req.InvoiceID))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statement)
}
