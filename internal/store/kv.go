package store

import (
	"context"
	"sort"
	"sync"
)

// Entry is a single key/value pair written by KV.SetMany.
type Entry struct {
	Key   string
	Value string
}

// KV is durable string-keyed storage scoped to one device profile.
//
// Implementations must make SetMany atomic: either every entry is written or
// none is. Get returns ErrNotFound for a key that was never written.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV. It is not durable and is meant for tests and
// for running without a configured storage backend.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.Get.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements KV.Set.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	return m.SetMany(ctx, Entry{Key: key, Value: value})
}

// SetMany implements KV.SetMany.
func (m *MemoryKV) SetMany(ctx context.Context, entries ...Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.data[e.Key] = e.Value
	}
	return nil
}

// Delete implements KV.Delete.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
