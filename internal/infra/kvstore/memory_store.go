package kvstore

import (
	"context"
	"sync"

	"github.com/yanqian/belaycheck/internal/domain/kv"
)

// MemoryStore is an in-memory implementation of kv.Store for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string]string)}
}

// Get implements kv.Store.
func (s *MemoryStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[namespace][key]
	return value, ok, nil
}

// Set implements kv.Store.
func (s *MemoryStore) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.entries[namespace]
	if !ok {
		bucket = make(map[string]string)
		s.entries[namespace] = bucket
	}
	bucket[key] = value
	return nil
}

// Delete implements kv.Store.
func (s *MemoryStore) Delete(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.entries[namespace]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.entries, namespace)
	}
	return nil
}

var _ kv.Store = (*MemoryStore)(nil)
