// Package bus fans out collection change notifications.
//
// Stores publish the collection name and document id after every successful
// write; subscribers (read-side caches, the HTTP change feed) react by
// re-reading the collection. Payloads deliberately carry no document body so
// the store stays the single source of truth.
package bus

import "context"

// Handler receives the id of a changed document.
type Handler func(id string)

// Broker delivers change notifications for named collections.
type Broker interface {
	// Publish announces that the document with the given id changed.
	Publish(ctx context.Context, collection, id string)

	// Subscribe registers a handler for changes to one collection. Handlers
	// must not block; delivery order between handlers is unspecified.
	Subscribe(collection string, fn Handler)
}
