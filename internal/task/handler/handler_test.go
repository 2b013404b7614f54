package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/catalog"
	"evsops/internal/platform/bus"
	"evsops/internal/platform/store"
	"evsops/internal/task/handler"
	"evsops/internal/task/models"
	"evsops/internal/task/service"
	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
	"evsops/pkg/testutil"
)

func newRouter(t *testing.T, actor domain.Actor, now time.Time) http.Handler {
	t.Helper()
	tasks := store.NewMemory[models.Task]("tasks", bus.NewMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(tasks, catalog.Default(), logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := requestcontext.WithActor(req.Context(), actor)
			ctx = requestcontext.WithTime(ctx, now)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	handler.New(svc, logger).Register(r)
	return r
}

func TestHandleCreate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	supervisor := domain.Actor{ID: domain.NewUserID(), Name: "Fahad", Role: domain.RoleSupervisor}
	router := newRouter(t, supervisor, now)

	location := catalog.Default().Locations()[0].ID

	t.Run("creates a pending task", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks", map[string]any{
			"locationId": location,
			"assigneeId": "user_inspector_1",
			"dueDate":    now.AddDate(0, 0, 7).Format(time.RFC3339),
		})
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		task := testutil.UnmarshalResponse[models.Task](t, rr)
		assert.Equal(t, models.TaskPending, task.Status)
		assert.Equal(t, location, task.LocationID)
	})

	t.Run("malformed due date is a bad request", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks", map[string]any{
			"locationId": location,
			"assigneeId": "user_inspector_1",
			"dueDate":    "next tuesday",
		})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("inspectors are forbidden", func(t *testing.T) {
		inspector := domain.Actor{ID: domain.NewUserID(), Name: "Noura", Role: domain.RoleInspector}
		forbidden := newRouter(t, inspector, now)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks", map[string]any{
			"locationId": location,
			"assigneeId": "user_inspector_1",
			"dueDate":    now.AddDate(0, 0, 7).Format(time.RFC3339),
		})
		rr := testutil.DoRequest(forbidden, req)
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})
}

func TestHandleProgressAndGet(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	supervisor := domain.Actor{ID: domain.NewUserID(), Name: "Fahad", Role: domain.RoleSupervisor}
	router := newRouter(t, supervisor, now)
	location := catalog.Default().Locations()[0].ID

	req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks", map[string]any{
		"locationId": location,
		"assigneeId": "user_inspector_1",
		"dueDate":    now.AddDate(0, 0, 7).Format(time.RFC3339),
	})
	created := testutil.UnmarshalResponse[models.Task](t, testutil.DoRequest(router, req))

	t.Run("progresses the task", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks/"+string(created.ID)+"/progress",
			map[string]string{"status": "IN_PROGRESS"})
		rr := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rr.Code)

		task := testutil.UnmarshalResponse[models.Task](t, rr)
		assert.Equal(t, models.TaskInProgress, task.Status)
	})

	t.Run("backwards progression is a conflict", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/tasks/"+string(created.ID)+"/progress",
			map[string]string{"status": "PENDING"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "invariant_violation")
	})

	t.Run("unknown task is not found", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/tasks/"+string(domain.NewTaskID())))
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("worklist covers the whole campus", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/tasks/worklist"))
		require.Equal(t, http.StatusOK, rr.Code)

		ranked := testutil.UnmarshalResponse[[]map[string]any](t, rr)
		assert.Len(t, *ranked, len(catalog.Default().Locations()))
	})
}
