package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store used by tests and by deployments that run
// without Redis. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes every Set return this error. Tests use it to exercise
	// the persistence-failure path where in-memory state must keep working.
	FailWrites error
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
