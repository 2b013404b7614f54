package httptransport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/platform/httputil"
	"evsops/pkg/requestcontext"
)

// ActorValidator resolves a bearer token to the acting staff member.
type ActorValidator interface {
	Validate(tokenString string) (domain.Actor, error)
}

// RequestContext stamps every request with an id and a fixed timestamp so
// downstream code reads one consistent clock per request.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithRequestID(r.Context(), uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireActor rejects requests without a valid bearer token and puts the
// resolved actor on the context.
func RequireActor(validator ActorValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}
			actor, err := validator.Validate(raw)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected token",
					"request_id", requestcontext.RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}
			ctx := requestcontext.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LogRequests emits one structured line per request.
func LogRequests(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.InfoContext(r.Context(), "request handled",
				"request_id", requestcontext.RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
