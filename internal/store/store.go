// Package store provides the key-value persistence used for per-session state.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value store. Writes overwrite; last write wins.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is a process-local KV.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value for key or ErrNotFound.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (m *MemoryKV) DeletePrefix(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// ScopedKV namespaces every key of an underlying store.
type ScopedKV struct {
	kv     KV
	prefix string
}

// Scoped wraps kv so that every key is prefixed with prefix.
func Scoped(kv KV, prefix string) *ScopedKV {
	return &ScopedKV{kv: kv, prefix: prefix}
}

// SessionPrefix returns the namespace used for one browser session.
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}

// Prefix returns the namespace prefix.
func (s *ScopedKV) Prefix() string {
	return s.prefix
}

// Get implements KV.
func (s *ScopedKV) Get(ctx context.Context, key string) (string, error) {
	return s.kv.Get(ctx, s.prefix+key)
}

// Set implements KV.
func (s *ScopedKV) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, s.prefix+key, value)
}

// Delete implements KV.
func (s *ScopedKV) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.prefix+key)
}
