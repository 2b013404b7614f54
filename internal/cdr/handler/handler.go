package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"evsops/internal/cdr/models"
	"evsops/internal/cdr/service"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
	"evsops/pkg/requestcontext"
)

// Service defines the interface for corrective report operations.
type Service interface {
	Create(ctx context.Context, req service.CreateRequest) (*models.CDR, error)
	Submit(ctx context.Context, id domain.CDRID) (*models.CDR, error)
	Finalize(ctx context.Context, id domain.CDRID, req service.FinalizeRequest) (*models.CDR, error)
	Get(ctx context.Context, id domain.CDRID) (*models.CDR, error)
	List(ctx context.Context) ([]models.CDR, error)
}

// Handler wires CDR endpoints to the cdr service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a CDR handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts CDR endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cdrs", h.HandleCreate)
	r.Get("/cdrs", h.HandleList)
	r.Get("/cdrs/vocabulary", h.HandleVocabulary)
	r.Get("/cdrs/{id}", h.HandleGet)
	r.Post("/cdrs/{id}/submit", h.HandleSubmit)
	r.Post("/cdrs/{id}/finalize", h.HandleFinalize)
}

type createRequest struct {
	EmployeeID             string   `json:"employeeId,omitempty"`
	LocationID             string   `json:"locationId"`
	OccurredAt             string   `json:"occurredAt,omitempty"`
	IncidentType           string   `json:"incidentType,omitempty"`
	InChargeName           string   `json:"inChargeName,omitempty"`
	InChargeID             string   `json:"inChargeId,omitempty"`
	InChargeEmail          string   `json:"inChargeEmail,omitempty"`
	ServiceTypes           []string `json:"serviceTypes,omitempty"`
	ManpowerDiscrepancies  []string `json:"manpowerDiscrepancies,omitempty"`
	MaterialDiscrepancies  []string `json:"materialDiscrepancies,omitempty"`
	EquipmentDiscrepancies []string `json:"equipmentDiscrepancies,omitempty"`
	OnSpotActions          []string `json:"onSpotActions,omitempty"`
	ActionPlan             []string `json:"actionPlan,omitempty"`
	StaffComment           string   `json:"staffComment,omitempty"`
	Attachments            []string `json:"attachments,omitempty"`
	OriginatingTaskID      string   `json:"originatingTaskId,omitempty"`
}

func (req createRequest) toDomain() (service.CreateRequest, error) {
	out := service.CreateRequest{
		EmployeeID:             domain.UserID(req.EmployeeID),
		LocationID:             domain.LocationID(req.LocationID),
		IncidentType:           models.IncidentType(req.IncidentType),
		InChargeName:           req.InChargeName,
		InChargeID:             req.InChargeID,
		InChargeEmail:          req.InChargeEmail,
		ManpowerDiscrepancies:  req.ManpowerDiscrepancies,
		MaterialDiscrepancies:  req.MaterialDiscrepancies,
		EquipmentDiscrepancies: req.EquipmentDiscrepancies,
		OnSpotActions:          req.OnSpotActions,
		ActionPlan:             req.ActionPlan,
		StaffComment:           req.StaffComment,
		Attachments:            req.Attachments,
		OriginatingTaskID:      domain.TaskID(req.OriginatingTaskID),
	}
	for _, st := range req.ServiceTypes {
		out.ServiceTypes = append(out.ServiceTypes, models.ServiceType(st))
	}
	if req.OccurredAt != "" {
		at, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return out, dErrors.New(dErrors.CodeBadRequest, "occurredAt must be an RFC 3339 timestamp")
		}
		out.OccurredAt = at
	}
	return out, nil
}

type finalizeRequest struct {
	Decision  string `json:"decision"`
	Comment   string `json:"comment"`
	Signature string `json:"signature"`
}

// HandleCreate handles POST /cdrs requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[createRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	domainReq, err := req.toDomain()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cdr, err := h.service.Create(ctx, domainReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "cdr creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"location", req.LocationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, cdr)
}

// HandleSubmit handles POST /cdrs/{id}/submit requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	cdr, err := h.service.Submit(r.Context(), domain.CDRID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cdr)
}

// HandleFinalize handles POST /cdrs/{id}/finalize requests.
func (h *Handler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := domain.CDRID(chi.URLParam(r, "id"))

	req, err := httputil.Decode[finalizeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	decision, err := models.ParseDecision(req.Decision)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cdr, err := h.service.Finalize(ctx, id, service.FinalizeRequest{
		Decision:  decision,
		Comment:   req.Comment,
		Signature: req.Signature,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "cdr finalization failed",
			"request_id", requestcontext.RequestID(ctx),
			"cdr", id,
			"decision", req.Decision,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cdr)
}

// HandleGet handles GET /cdrs/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cdr, err := h.service.Get(r.Context(), domain.CDRID(chi.URLParam(r, "id")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cdr)
}

// HandleList handles GET /cdrs requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	cdrs, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cdrs)
}

// HandleVocabulary handles GET /cdrs/vocabulary requests. Clients render the
// fixed checkbox lists from here instead of hardcoding them.
func (h *Handler) HandleVocabulary(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{
		"manpowerDiscrepancies":  models.ManpowerDiscrepancyOptions,
		"materialDiscrepancies":  models.MaterialDiscrepancyOptions,
		"equipmentDiscrepancies": models.EquipmentDiscrepancyOptions,
		"onSpotActions":          models.OnSpotActionOptions,
		"actionPlan":             models.ActionPlanOptions,
	})
}
