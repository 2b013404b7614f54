package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/platform/bus"
	"evsops/pkg/platform/sentinel"
)

type testDoc struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

func TestMemoryCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("Get returns ErrNotFound for unknown id", func(t *testing.T) {
		m := NewMemory[testDoc]("docs", bus.NewMemory())
		_, err := m.Get(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("Put replaces by id without duplicating", func(t *testing.T) {
		m := NewMemory[testDoc]("docs", bus.NewMemory())
		require.NoError(t, m.Put(ctx, "a", testDoc{ID: "a", Value: 1}))
		require.NoError(t, m.Put(ctx, "a", testDoc{ID: "a", Value: 2}))

		all, err := m.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, 2, all[0].Value)
	})

	t.Run("ReadAll preserves insertion order", func(t *testing.T) {
		m := NewMemory[testDoc]("docs", bus.NewMemory())
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, m.Put(ctx, id, testDoc{ID: id}))
		}
		all, err := m.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "c", all[0].ID)
		assert.Equal(t, "a", all[1].ID)
		assert.Equal(t, "b", all[2].ID)
	})

	t.Run("Execute applies mutate only when validate passes", func(t *testing.T) {
		m := NewMemory[testDoc]("docs", bus.NewMemory())
		require.NoError(t, m.Put(ctx, "a", testDoc{ID: "a", Value: 1}))

		wantErr := errors.New("rejected")
		_, err := m.Execute(ctx, "a",
			func(d *testDoc) error { return wantErr },
			func(d *testDoc) { d.Value = 99 },
		)
		assert.ErrorIs(t, err, wantErr)

		doc, err := m.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Value, "failed validate must leave the document unchanged")

		updated, err := m.Execute(ctx, "a",
			func(d *testDoc) error { return nil },
			func(d *testDoc) { d.Value = 99 },
		)
		require.NoError(t, err)
		assert.Equal(t, 99, updated.Value)
	})

	t.Run("Execute on a missing document returns ErrNotFound", func(t *testing.T) {
		m := NewMemory[testDoc]("docs", bus.NewMemory())
		_, err := m.Execute(ctx, "missing",
			func(d *testDoc) error { return nil },
			func(d *testDoc) {},
		)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("writes notify collection subscribers", func(t *testing.T) {
		broker := bus.NewMemory()
		m := NewMemory[testDoc]("docs", broker)

		var seen []string
		m.Subscribe(func(id string) { seen = append(seen, id) })

		require.NoError(t, m.Put(ctx, "a", testDoc{ID: "a"}))
		_, err := m.Execute(ctx, "a",
			func(d *testDoc) error { return nil },
			func(d *testDoc) { d.Value = 1 },
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "a"}, seen)
	})
}
