package tokenstore

import (
	"context"
	"sync"
)

var _ Backend = (*InMemoryBackend)(nil)

// InMemoryBackend keeps values for the life of the process.
type InMemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryBackend creates an empty in-memory backend
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		values: make(map[string]string),
	}
}

func (b *InMemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	return v, ok, nil
}

func (b *InMemoryBackend) SetMany(_ context.Context, values map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, v := range values {
		b.values[k] = v
	}
	return nil
}

func (b *InMemoryBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, k := range keys {
		delete(b.values, k)
	}
	return nil
}
