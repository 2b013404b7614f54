// Package store defines the persistence boundary for the core.
//
// Every entity collection is accessed through Collection: read the whole
// collection, get or replace one document by id, or run an atomic
// validate-then-mutate. Documents are written wholesale; there is no field
// patching at this boundary. Retrying a failed Put with the same id overwrites
// rather than duplicates.
//
// Two implementations exist: Memory (map per collection, the default) and
// Postgres (JSONB documents). The core depends only on this interface and
// treats any in-memory copy as a cache, not a source of truth.
package store

import (
	"context"

	"evsops/internal/platform/bus"
)

// Collection provides typed access to one named document collection.
type Collection[T any] interface {
	// ReadAll returns every document, in a stable order.
	ReadAll(ctx context.Context) ([]T, error)

	// Get returns the document with the given id, or sentinel.ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Put replaces the document with the given id, creating it if absent.
	Put(ctx context.Context, id string, doc T) error

	// Execute atomically loads the document, runs validate, and if it returns
	// nil applies mutate and persists the result. The lock (mutex or row lock)
	// is held across both callbacks. Validate errors pass through unwrapped so
	// services can return domain errors from inside the callback.
	Execute(ctx context.Context, id string, validate func(*T) error, mutate func(*T)) (T, error)

	// Subscribe registers a change handler for this collection.
	Subscribe(fn bus.Handler)
}
