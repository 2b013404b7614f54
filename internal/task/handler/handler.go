package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"evsops/internal/task/models"
	"evsops/internal/task/ranking"
	"evsops/internal/task/service"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
	"evsops/pkg/requestcontext"
)

// Service defines the interface for task scheduling operations.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*models.Task, error)
	Progress(ctx context.Context, id domain.TaskID, next models.TaskStatus) (*models.Task, error)
	Get(ctx context.Context, id domain.TaskID) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Worklist(ctx context.Context) ([]ranking.RankedLocation, error)
}

// Handler wires task endpoints to the task service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a task handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts task endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/tasks", h.HandleCreate)
	r.Get("/tasks", h.HandleList)
	r.Get("/tasks/worklist", h.HandleWorklist)
	r.Get("/tasks/{id}", h.HandleGet)
	r.Post("/tasks/{id}/progress", h.HandleProgress)
}

type createRequest struct {
	LocationID string `json:"locationId"`
	AssigneeID string `json:"assigneeId"`
	DueDate    string `json:"dueDate"`
	Priority   int    `json:"priority,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type progressRequest struct {
	Status string `json:"status"`
}

// HandleCreate handles POST /tasks requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[createRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	due, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "dueDate must be an RFC 3339 timestamp"))
		return
	}

	task, err := h.service.Create(ctx, service.CreateRequest{
		LocationID: domain.LocationID(req.LocationID),
		AssigneeID: domain.UserID(req.AssigneeID),
		DueDate:    due,
		Priority:   req.Priority,
		Notes:      req.Notes,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "task creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"location", req.LocationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, task)
}

// HandleProgress handles POST /tasks/{id}/progress requests.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := domain.TaskID(chi.URLParam(r, "id"))

	req, err := httputil.Decode[progressRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	task, err := h.service.Progress(ctx, id, models.TaskStatus(req.Status))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, task)
}

// HandleGet handles GET /tasks/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), domain.TaskID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, task)
}

// HandleList handles GET /tasks requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tasks)
}

// HandleWorklist handles GET /tasks/worklist requests.
func (h *Handler) HandleWorklist(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.service.Worklist(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ranked)
}
