// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them. Keeping this package free of
// net/http lets services import only what they need.
//
// Usage in services:
//
//	actor := requestcontext.Actor(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithActor(ctx, supervisor)
package requestcontext

import (
	"context"
	"time"

	"evsops/pkg/domain"
)

type (
	actorKey       struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Actor retrieves the acting user from the context. Returns the zero Actor if
// no middleware resolved one.
func Actor(ctx context.Context) domain.Actor {
	if a, ok := ctx.Value(actorKey{}).(domain.Actor); ok {
		return a
	}
	return domain.Actor{}
}

// WithActor injects the acting user into the context.
func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// RequestID retrieves the request correlation id from the context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request id into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Now retrieves the request-scoped time from the context, falling back to
// time.Now for non-HTTP contexts (workers, tests that don't pin time).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins a specific time in the context. Tests use this to make
// reference numbers, recency bonuses, and finalized dates deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
