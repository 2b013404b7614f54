// Package httptransport assembles the HTTP surface: the chi router, the
// middleware chain, and the ops endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar mounts one domain's endpoints on the router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs wired in from main.
type Deps struct {
	Logger    *slog.Logger
	Validator ActorValidator

	// Authenticated API surfaces.
	Catalog    Registrar
	Inspection Registrar
	CDR        Registrar
	Penalty    Registrar
	Task       Registrar
}

// NewRouter builds the full router. Ops endpoints are open; everything under
// /api/v1 requires a valid bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestContext)
	r.Use(LogRequests(d.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(RequireActor(d.Validator, d.Logger))
		for _, reg := range []Registrar{d.Catalog, d.Inspection, d.CDR, d.Penalty, d.Task} {
			if reg != nil {
				reg.Register(api)
			}
		}
	})
	return r
}
