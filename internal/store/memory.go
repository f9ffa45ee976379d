package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Store implementation. Used in tests and
// when running without a database; state is lost on restart.
type memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{data: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *memory) Put(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = v
	return nil
}

func (m *memory) CreateIfAbsent(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		out := make([]byte, len(existing))
		copy(out, existing)
		return out, false, nil
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}
