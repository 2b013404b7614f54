package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"evsops/internal/catalog"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
)

// Handler serves the read-only campus reference data.
type Handler struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Handler {
	return &Handler{catalog: cat}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/catalog/zones", h.HandleZones)
	r.Get("/catalog/locations", h.HandleLocations)
	r.Get("/catalog/forms", h.HandleForms)
	r.Get("/catalog/locations/{id}/form", h.HandleLocationForm)
}

// HandleZones handles GET /catalog/zones requests.
func (h *Handler) HandleZones(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.Zones())
}

// HandleLocations handles GET /catalog/locations requests.
func (h *Handler) HandleLocations(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.Locations())
}

// HandleForms handles GET /catalog/forms requests.
func (h *Handler) HandleForms(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.Forms())
}

// HandleLocationForm handles GET /catalog/locations/{id}/form requests.
func (h *Handler) HandleLocationForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.catalog.FormForLocation(domain.LocationID(chi.URLParam(r, "id")))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown location"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, form)
}
