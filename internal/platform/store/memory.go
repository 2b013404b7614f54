package store

import (
	"context"
	"sync"

	"evsops/internal/platform/bus"
	"evsops/pkg/platform/sentinel"
)

// Memory is the in-process Collection implementation. Insertion order is
// preserved so ReadAll is deterministic.
type Memory[T any] struct {
	name   string
	broker bus.Broker

	mu    sync.RWMutex
	docs  map[string]T
	order []string
}

func NewMemory[T any](name string, broker bus.Broker) *Memory[T] {
	return &Memory[T]{
		name:   name,
		broker: broker,
		docs:   make(map[string]T),
	}
}

func (m *Memory[T]) ReadAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out, nil
}

func (m *Memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return doc, nil
}

func (m *Memory[T]) Put(ctx context.Context, id string, doc T) error {
	m.mu.Lock()
	if _, exists := m.docs[id]; !exists {
		m.order = append(m.order, id)
	}
	m.docs[id] = doc
	m.mu.Unlock()

	m.broker.Publish(ctx, m.name, id)
	return nil
}

func (m *Memory[T]) Execute(ctx context.Context, id string, validate func(*T) error, mutate func(*T)) (T, error) {
	m.mu.Lock()
	doc, ok := m.docs[id]
	if !ok {
		m.mu.Unlock()
		var zero T
		return zero, sentinel.ErrNotFound
	}
	if err := validate(&doc); err != nil {
		m.mu.Unlock()
		var zero T
		return zero, err
	}
	mutate(&doc)
	m.docs[id] = doc
	m.mu.Unlock()

	m.broker.Publish(ctx, m.name, id)
	return doc, nil
}

func (m *Memory[T]) Subscribe(fn bus.Handler) {
	m.broker.Subscribe(m.name, fn)
}
