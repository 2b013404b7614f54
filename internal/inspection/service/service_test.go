package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/catalog"
	"evsops/internal/inspection/models"
	"evsops/internal/inspection/service"
	"evsops/internal/platform/bus"
	"evsops/internal/platform/store"
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
	"evsops/pkg/testutil"
)

const threshold = 70

type fakeOpener struct {
	calls  int
	report models.Report
	score  float64
	err    error
}

func (f *fakeOpener) OpenDraftForLowScore(_ context.Context, report models.Report, score float64) error {
	f.calls++
	f.report = report
	f.score = score
	return f.err
}

type fakeLinker struct {
	taskID   domain.TaskID
	reportID domain.ReportID
}

func (f *fakeLinker) AttachReport(_ context.Context, taskID domain.TaskID, reportID domain.ReportID) error {
	f.taskID = taskID
	f.reportID = reportID
	return nil
}

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	reports := store.NewMemory[models.Report]("reports", bus.NewMemory())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.New(reports, catalog.Default(), threshold, logger, opts...)
}

func inspectorCtx(now time.Time) context.Context {
	ctx := requestcontext.WithActor(context.Background(), domain.Actor{
		ID:   domain.NewUserID(),
		Name: "Noura Al-Qahtani",
		Role: domain.RoleInspector,
	})
	return requestcontext.WithTime(ctx, now)
}

func supervisorCtx(now time.Time) context.Context {
	ctx := requestcontext.WithActor(context.Background(), domain.Actor{
		ID:   domain.NewUserID(),
		Name: "Fahad Al-Harbi",
		Role: domain.RoleSupervisor,
	})
	return requestcontext.WithTime(ctx, now)
}

// itemsAtFraction fills the location's checklist scoring each item at the
// given fraction of its maximum.
func itemsAtFraction(t *testing.T, locationID domain.LocationID, fraction float64) []models.ResultItem {
	t.Helper()
	form, ok := catalog.Default().FormForLocation(locationID)
	require.True(t, ok)
	out := make([]models.ResultItem, 0, len(form.Items))
	for _, item := range form.Items {
		out = append(out, models.ResultItem{
			ItemID: item.ID,
			Score:  int(float64(item.MaxScore) * fraction),
		})
	}
	return out
}

func someLocation(t *testing.T) domain.LocationID {
	t.Helper()
	locations := catalog.Default().Locations()
	require.NotEmpty(t, locations)
	return locations[0].ID
}

func TestSubmit(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

	testutil.Given(t, "a clean full-marks inspection", func(t *testing.T) {
		opener := &fakeOpener{}
		svc := newService(t, service.WithDraftCDROpener(opener))
		ctx := inspectorCtx(now)
		loc := someLocation(t)

		testutil.When(t, "the report is submitted", func(t *testing.T) {
			report, err := svc.Submit(ctx, service.SubmitRequest{
				LocationID: loc,
				Items:      itemsAtFraction(t, loc, 1),
			})
			require.NoError(t, err)

			testutil.Then(t, "it scores 100 and opens no corrective report", func(t *testing.T) {
				assert.InDelta(t, 100, svc.Score(*report), 1e-9)
				assert.Equal(t, models.StatusSubmitted, report.Status)
				assert.Equal(t, "INSP-2026-03-001", report.ReferenceNumber)
				assert.Zero(t, opener.calls)
			})
		})
	})

	testutil.Given(t, "an inspection scoring half marks", func(t *testing.T) {
		opener := &fakeOpener{}
		svc := newService(t, service.WithDraftCDROpener(opener))
		ctx := inspectorCtx(now)
		loc := someLocation(t)

		testutil.When(t, "the report is submitted", func(t *testing.T) {
			report, err := svc.Submit(ctx, service.SubmitRequest{
				LocationID: loc,
				Items:      itemsAtFraction(t, loc, 0.5),
			})
			require.NoError(t, err)

			testutil.Then(t, "a draft corrective report opens for it", func(t *testing.T) {
				assert.Equal(t, 1, opener.calls)
				assert.Equal(t, report.ID, opener.report.ID)
				assert.Less(t, opener.score, float64(threshold))
			})
		})
	})

	t.Run("an opener failure does not fail the submission", func(t *testing.T) {
		opener := &fakeOpener{err: errors.New("downstream unavailable")}
		svc := newService(t, service.WithDraftCDROpener(opener))
		loc := someLocation(t)

		report, err := svc.Submit(inspectorCtx(now), service.SubmitRequest{
			LocationID: loc,
			Items:      itemsAtFraction(t, loc, 0.5),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, opener.calls)

		stored, err := svc.Get(inspectorCtx(now), report.ID)
		require.NoError(t, err)
		assert.Equal(t, report.ReferenceNumber, stored.ReferenceNumber)
	})

	t.Run("a scheduled inspection links back to its task", func(t *testing.T) {
		linker := &fakeLinker{}
		svc := newService(t, service.WithTaskLinker(linker))
		loc := someLocation(t)
		taskID := domain.NewTaskID()

		report, err := svc.Submit(inspectorCtx(now), service.SubmitRequest{
			LocationID:        loc,
			Items:             itemsAtFraction(t, loc, 1),
			OriginatingTaskID: taskID,
		})
		require.NoError(t, err)
		assert.Equal(t, taskID, linker.taskID)
		assert.Equal(t, report.ID, linker.reportID)
	})

	t.Run("references number sequentially within the year", func(t *testing.T) {
		svc := newService(t)
		loc := someLocation(t)

		for i, want := range []string{"INSP-2026-03-001", "INSP-2026-03-002", "INSP-2026-04-003"} {
			submitTime := now.AddDate(0, 0, i*20)
			report, err := svc.Submit(inspectorCtx(submitTime), service.SubmitRequest{
				LocationID: loc,
				Items:      itemsAtFraction(t, loc, 1),
			})
			require.NoError(t, err)
			assert.Equal(t, want, report.ReferenceNumber)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService(t)
		ctx := inspectorCtx(now)
		loc := someLocation(t)
		valid := itemsAtFraction(t, loc, 1)

		t.Run("unknown location", func(t *testing.T) {
			_, err := svc.Submit(ctx, service.SubmitRequest{LocationID: "loc_nowhere", Items: valid})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		})

		t.Run("no items", func(t *testing.T) {
			_, err := svc.Submit(ctx, service.SubmitRequest{LocationID: loc})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})

		t.Run("item off the form", func(t *testing.T) {
			items := append([]models.ResultItem{}, valid...)
			items[0].ItemID = "lr_item_01"
			_, err := svc.Submit(ctx, service.SubmitRequest{LocationID: loc, Items: items})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})

		t.Run("score above the item maximum", func(t *testing.T) {
			items := append([]models.ResultItem{}, valid...)
			items[0].Score = 1000
			_, err := svc.Submit(ctx, service.SubmitRequest{LocationID: loc, Items: items})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})

		t.Run("item scored twice", func(t *testing.T) {
			items := append([]models.ResultItem{}, valid...)
			items[1] = items[0]
			_, err := svc.Submit(ctx, service.SubmitRequest{LocationID: loc, Items: items})
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	})
}

func TestReview(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc := newService(t)
	loc := someLocation(t)

	report, err := svc.Submit(inspectorCtx(now), service.SubmitRequest{
		LocationID: loc,
		Items:      itemsAtFraction(t, loc, 1),
	})
	require.NoError(t, err)

	t.Run("a supervisor reviews a submitted report", func(t *testing.T) {
		reviewed, err := svc.Review(supervisorCtx(now), report.ID, "well done")
		require.NoError(t, err)
		assert.Equal(t, models.StatusReviewed, reviewed.Status)
		assert.Equal(t, "well done", reviewed.SupervisorComment)
	})

	t.Run("a second review is a conflict", func(t *testing.T) {
		_, err := svc.Review(supervisorCtx(now), report.ID, "again")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("inspectors cannot review", func(t *testing.T) {
		_, err := svc.Review(inspectorCtx(now), report.ID, "mine")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestPeriodCompliance(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc := newService(t)
	loc := someLocation(t)

	for _, fraction := range []float64{1, 0} {
		_, err := svc.Submit(inspectorCtx(now), service.SubmitRequest{
			LocationID: loc,
			Items:      itemsAtFraction(t, loc, fraction),
		})
		require.NoError(t, err)
	}

	mean, err := svc.PeriodCompliance(context.Background(),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 50, mean, 1e-9)

	t.Run("reports outside the window are excluded", func(t *testing.T) {
		mean, err := svc.PeriodCompliance(context.Background(),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Zero(t, mean)
	})
}

func TestLastInspectionDates(t *testing.T) {
	first := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	later := first.AddDate(0, 0, 10)
	svc := newService(t)
	loc := someLocation(t)

	for _, at := range []time.Time{first, later} {
		_, err := svc.Submit(inspectorCtx(at), service.SubmitRequest{
			LocationID: loc,
			Items:      itemsAtFraction(t, loc, 1),
		})
		require.NoError(t, err)
	}

	dates, err := svc.LastInspectionDates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, later, dates[loc])
}
