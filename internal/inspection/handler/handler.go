package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"evsops/internal/inspection/models"
	"evsops/internal/inspection/service"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
	"evsops/pkg/requestcontext"
)

// Service defines the interface for inspection report operations.
type Service interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*models.Report, error)
	Review(ctx context.Context, id domain.ReportID, comment string) (*models.Report, error)
	Get(ctx context.Context, id domain.ReportID) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	Score(report models.Report) float64
	PeriodCompliance(ctx context.Context, from, to time.Time) (float64, error)
	StatsByInspector(ctx context.Context, from, to time.Time) ([]service.InspectorStats, error)
}

// Handler wires inspection endpoints to the inspection service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an inspection handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts inspection endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reports", h.HandleSubmit)
	r.Get("/reports", h.HandleList)
	r.Get("/reports/{id}", h.HandleGet)
	r.Post("/reports/{id}/review", h.HandleReview)
	r.Get("/analytics/compliance", h.HandleCompliance)
	r.Get("/analytics/inspectors", h.HandleInspectorStats)
}

type submitRequest struct {
	LocationID        string              `json:"locationId"`
	Items             []models.ResultItem `json:"items"`
	OriginatingTaskID string              `json:"originatingTaskId,omitempty"`
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

// reportResponse decorates a stored report with its computed score.
type reportResponse struct {
	models.Report
	Score float64 `json:"score"`
}

func (h *Handler) response(report models.Report) reportResponse {
	return reportResponse{Report: report, Score: h.service.Score(report)}
}

// HandleSubmit handles POST /reports requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[submitRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Submit(ctx, service.SubmitRequest{
		LocationID:        domain.LocationID(req.LocationID),
		Items:             req.Items,
		OriginatingTaskID: domain.TaskID(req.OriginatingTaskID),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "report submission failed",
			"request_id", requestcontext.RequestID(ctx),
			"location", req.LocationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, h.response(*report))
}

// HandleReview handles POST /reports/{id}/review requests.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := domain.ReportID(chi.URLParam(r, "id"))

	req, err := httputil.Decode[reviewRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Review(ctx, id, req.Comment)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.response(*report))
}

// HandleGet handles GET /reports/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Get(r.Context(), domain.ReportID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.response(*report))
}

// HandleList handles GET /reports requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]reportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, h.response(report))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleCompliance handles GET /analytics/compliance requests.
func (h *Handler) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	from, to, err := periodParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	mean, err := h.service.PeriodCompliance(r.Context(), from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"from":           from,
		"to":             to,
		"meanCompliance": mean,
	})
}

// HandleInspectorStats handles GET /analytics/inspectors requests.
func (h *Handler) HandleInspectorStats(w http.ResponseWriter, r *http.Request) {
	from, to, err := periodParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stats, err := h.service.StatsByInspector(r.Context(), from, to)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// periodParams parses the required from/to RFC 3339 query parameters.
func periodParams(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeBadRequest, "from must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeBadRequest, "to must be an RFC 3339 timestamp")
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeBadRequest, "from must precede to")
	}
	return from, to, nil
}
