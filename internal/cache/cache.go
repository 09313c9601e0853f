// Package cache provides the key-value store used by the model scanner.
// The scanner only needs single-key atomic operations, so any ordinary
// key-value backend qualifies; Memory serves tests and single-node runs,
// Redis serves deployments.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the cache contract the scanner depends on.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores a value. A zero ttl means no expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Forget(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a mutex-guarded in-process Store with per-key expiry.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.Get(ctx, key)
	return ok, err
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Flush(_ context.Context) error {
	m.mu.Lock()
	m.items = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Len returns the number of live entries, for diagnostics.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
