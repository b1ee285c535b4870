package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process [Store]. It is the default backend when no other
// store is configured and the workhorse for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	fields map[Key]string
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fields: make(map[Key]string)}
}

// Get describes the get operation and its observable behavior.
func (m *MemoryStore) Get(_ context.Context, key Key) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.fields[key]
	if !ok {
		return "", ErrFieldNotFound
	}
	return value, nil
}

// Set describes the set operation and its observable behavior.
func (m *MemoryStore) Set(_ context.Context, key Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fields[key] = value
	return nil
}

// Delete describes the delete operation and its observable behavior.
func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.fields, key)
	return nil
}
