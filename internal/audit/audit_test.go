package audit_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/audit"
	"evsops/pkg/domain"
	"evsops/pkg/requestcontext"
)

func TestRecorder(t *testing.T) {
	store := audit.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(store, logger)

	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	actor := domain.Actor{ID: domain.NewUserID(), Name: "Fahad", Role: domain.RoleSupervisor}
	ctx := requestcontext.WithActor(context.Background(), actor)
	ctx = requestcontext.WithTime(ctx, now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")

	recorder.Record(ctx, audit.CategoryCompliance, audit.EventCDRFinalized, "CDR-2026-03-001", "PENALTY")
	recorder.Record(ctx, audit.CategoryOperations, audit.EventTaskCreated, "task-9", "")

	t.Run("events carry the request context", func(t *testing.T) {
		events, err := store.ListBySubject(ctx, "CDR-2026-03-001")
		require.NoError(t, err)
		require.Len(t, events, 1)

		event := events[0]
		assert.Equal(t, audit.CategoryCompliance, event.Category)
		assert.Equal(t, actor.ID, event.ActorID)
		assert.Equal(t, now, event.Timestamp)
		assert.Equal(t, "req-1", event.RequestID)
		assert.Equal(t, "PENALTY", event.Reason)
	})

	t.Run("the trail keeps append order", func(t *testing.T) {
		events, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, audit.EventCDRFinalized, events[0].Action)
		assert.Equal(t, audit.EventTaskCreated, events[1].Action)
	})
}

func TestNilRecorderIsSafe(t *testing.T) {
	var recorder *audit.Recorder
	recorder.Record(context.Background(), audit.CategoryOperations, audit.EventTaskCreated, "task-1", "")
}
