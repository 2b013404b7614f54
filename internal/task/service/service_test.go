package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/catalog"
	"evsops/internal/platform/bus"
	"evsops/internal/platform/store"
	"evsops/internal/task/models"
	"evsops/internal/task/service"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
	"evsops/pkg/testutil"
)

type fixedDates map[domain.LocationID]time.Time

func (f fixedDates) LastInspectionDates(context.Context) (map[domain.LocationID]time.Time, error) {
	return f, nil
}

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	tasks := store.NewMemory[models.Task]("tasks", bus.NewMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.New(tasks, catalog.Default(), logger, opts...)
}

func supervisorCtx(now time.Time) context.Context {
	ctx := requestcontext.WithActor(context.Background(), domain.Actor{
		ID:   domain.NewUserID(),
		Name: "Fahad Al-Harbi",
		Role: domain.RoleSupervisor,
	})
	return requestcontext.WithTime(ctx, now)
}

func anyLocation(t *testing.T) domain.LocationID {
	t.Helper()
	locations := catalog.Default().Locations()
	require.NotEmpty(t, locations)
	return locations[0].ID
}

func TestCreate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 7)

	testutil.Given(t, "a supervisor scheduling an inspection", func(t *testing.T) {
		svc := newService(t)
		ctx := supervisorCtx(now)
		inspector := domain.NewUserID()

		testutil.When(t, "the task is created", func(t *testing.T) {
			task, err := svc.Create(ctx, service.CreateRequest{
				LocationID: anyLocation(t),
				AssigneeID: inspector,
				DueDate:    due,
			})
			require.NoError(t, err)

			testutil.Then(t, "it starts pending with the targeting fields set", func(t *testing.T) {
				assert.Equal(t, models.TaskPending, task.Status)
				assert.Equal(t, inspector, task.AssigneeID)
				assert.Equal(t, domain.RiskHigh, task.RiskCategory)
				assert.Equal(t, due, task.DueDate)
				assert.Equal(t, requestcontext.Actor(ctx).ID, task.CreatedBy)
			})
		})
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService(t)
		ctx := supervisorCtx(now)

		cases := map[string]service.CreateRequest{
			"unknown location": {LocationID: "loc_nowhere", AssigneeID: domain.NewUserID(), DueDate: due},
			"missing assignee": {LocationID: anyLocation(t), DueDate: due},
			"missing due date": {LocationID: anyLocation(t), AssigneeID: domain.NewUserID()},
			"past due date":    {LocationID: anyLocation(t), AssigneeID: domain.NewUserID(), DueDate: now.AddDate(0, 0, -1)},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := svc.Create(ctx, req)
				assert.Error(t, err)
			})
		}
	})

	t.Run("inspectors cannot create tasks", func(t *testing.T) {
		svc := newService(t)
		ctx := requestcontext.WithActor(context.Background(), domain.Actor{
			ID: domain.NewUserID(), Name: "Noura", Role: domain.RoleInspector,
		})
		_, err := svc.Create(ctx, service.CreateRequest{
			LocationID: anyLocation(t), AssigneeID: domain.NewUserID(), DueDate: due,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestProgress(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc := newService(t)
	ctx := supervisorCtx(now)

	task, err := svc.Create(ctx, service.CreateRequest{
		LocationID: anyLocation(t), AssigneeID: domain.NewUserID(), DueDate: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	t.Run("pending to in progress to completed", func(t *testing.T) {
		updated, err := svc.Progress(ctx, task.ID, models.TaskInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.TaskInProgress, updated.Status)

		updated, err = svc.Progress(ctx, task.ID, models.TaskCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.TaskCompleted, updated.Status)
		assert.Equal(t, now, updated.CompletedAt)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		_, err := svc.Progress(ctx, task.ID, models.TaskInProgress)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.Progress(ctx, domain.NewTaskID(), models.TaskInProgress)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestProgressAssignee(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc := newService(t)
	assignee := domain.NewUserID()

	task, err := svc.Create(supervisorCtx(now), service.CreateRequest{
		LocationID: anyLocation(t), AssigneeID: assignee, DueDate: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	inspectorCtx := func(id domain.UserID) context.Context {
		ctx := requestcontext.WithActor(context.Background(), domain.Actor{
			ID: id, Name: "Noura", Role: domain.RoleInspector,
		})
		return requestcontext.WithTime(ctx, now)
	}

	t.Run("another inspector cannot progress the task", func(t *testing.T) {
		_, err := svc.Progress(inspectorCtx(domain.NewUserID()), task.ID, models.TaskInProgress)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("the assigned inspector can", func(t *testing.T) {
		updated, err := svc.Progress(inspectorCtx(assignee), task.ID, models.TaskInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.TaskInProgress, updated.Status)
	})
}

func TestOverdueIsDerived(t *testing.T) {
	created := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc := newService(t)

	task, err := svc.Create(supervisorCtx(created), service.CreateRequest{
		LocationID: anyLocation(t), AssigneeID: domain.NewUserID(), DueDate: created.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	t.Run("before the due date the task reads pending", func(t *testing.T) {
		got, err := svc.Get(supervisorCtx(created.AddDate(0, 0, 1)), task.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TaskPending, got.Status)
	})

	t.Run("past the due date the task reads overdue", func(t *testing.T) {
		got, err := svc.Get(supervisorCtx(created.AddDate(0, 0, 5)), task.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TaskOverdue, got.Status)
	})

	t.Run("a completed task never reads overdue", func(t *testing.T) {
		ctx := supervisorCtx(created.AddDate(0, 0, 1))
		_, err := svc.Progress(ctx, task.ID, models.TaskInProgress)
		require.NoError(t, err)
		_, err = svc.Progress(ctx, task.ID, models.TaskCompleted)
		require.NoError(t, err)

		got, err := svc.Get(supervisorCtx(created.AddDate(0, 0, 30)), task.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TaskCompleted, got.Status)
	})
}

func TestAttachArtifacts(t *testing.T) {
	now := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	svc := newService(t)
	ctx := supervisorCtx(now)

	task, err := svc.Create(ctx, service.CreateRequest{
		LocationID: anyLocation(t), AssigneeID: domain.NewUserID(), DueDate: now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	t.Run("attaching a report completes the task", func(t *testing.T) {
		reportID := domain.NewReportID()
		require.NoError(t, svc.AttachReport(ctx, task.ID, reportID))

		got, err := svc.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, reportID, got.RelatedReportID)
		assert.Equal(t, models.TaskCompleted, got.Status)

		t.Run("a second, different report is a conflict", func(t *testing.T) {
			err := svc.AttachReport(ctx, task.ID, domain.NewReportID())
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		})

		t.Run("re-attaching the same report is a no-op", func(t *testing.T) {
			assert.NoError(t, svc.AttachReport(ctx, task.ID, reportID))
		})
	})

	t.Run("attaching a cdr records the back-link", func(t *testing.T) {
		cdrID := domain.NewCDRID()
		require.NoError(t, svc.AttachCDR(ctx, task.ID, cdrID))

		got, err := svc.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, cdrID, got.RelatedCDRID)
	})
}

func TestWorklist(t *testing.T) {
	now := time.Date(2026, time.March, 20, 8, 0, 0, 0, time.UTC)
	cat := catalog.Default()
	locations := cat.Locations()
	require.NotEmpty(t, locations)

	dates := fixedDates{}
	for _, loc := range locations {
		dates[loc.ID] = now.AddDate(0, 0, -5)
	}
	svc := newService(t, service.WithInspectionDates(dates))

	ranked, err := svc.Worklist(supervisorCtx(now))
	require.NoError(t, err)
	require.Len(t, ranked, len(locations))

	t.Run("high risk outranks low risk at equal staleness", func(t *testing.T) {
		assert.Equal(t, domain.RiskHigh, ranked[0].RiskCategory)
		assert.Equal(t, domain.RiskLow, ranked[len(ranked)-1].RiskCategory)
	})

	t.Run("scores descend", func(t *testing.T) {
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
		}
	})
}
