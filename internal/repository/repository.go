// Package repository defines the persistent key-value surface the event log
// is stored in.
package repository

import (
	"context"
	"sync"
)

// KeyValueStore is the persistent store the board is synchronised to.
// Each key holds one serialized document; an absent key reads as not found
// rather than as an error.
type KeyValueStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// SetMany replaces several keys together. Implementations that support
	// transactions apply all values or none.
	SetMany(ctx context.Context, values map[string]string) error

	Close() error
}

// MemoryStore is an in-process KeyValueStore. It backs the testing
// environment and nothing it holds outlives the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetMany(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
