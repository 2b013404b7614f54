package bus

import (
	"context"
	"sync"
)

// Memory is the in-process broker. Delivery is synchronous with the publish
// call, which keeps tests deterministic.
type Memory struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewMemory() *Memory {
	return &Memory{handlers: make(map[string][]Handler)}
}

func (m *Memory) Publish(_ context.Context, collection, id string) {
	m.mu.RLock()
	handlers := m.handlers[collection]
	m.mu.RUnlock()
	for _, fn := range handlers {
		fn(id)
	}
}

func (m *Memory) Subscribe(collection string, fn Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[collection] = append(m.handlers[collection], fn)
}
