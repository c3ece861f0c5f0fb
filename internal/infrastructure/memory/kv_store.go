// Package memory implements an in-process KVStore, used by default in tests
// and for ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/oksasatya/go-profile-manager/internal/domain/repository"
)

// KVStore is a map-backed key/value store with an optional byte quota
// counted over keys and values, mirroring browser storage limits.
type KVStore struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
	// failNext makes the next Set fail with the given error.
	failNext error
}

// NewKVStore returns an empty store. quota <= 0 disables the limit.
func NewKVStore(quota int) *KVStore {
	return &KVStore{data: make(map[string]string), quota: quota}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	if s.quota > 0 {
		used := s.usedLocked() - s.sizeOfLocked(key) + len(key) + len(value)
		if used > s.quota {
			return fmt.Errorf("set %q (%d bytes over %d): %w", key, used, s.quota, repository.ErrQuotaExceeded)
		}
	}
	s.data[key] = value
	return nil
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// FailNextSet injects a failure for the next Set call.
func (s *KVStore) FailNextSet(err error) {
	s.mu.Lock()
	s.failNext = err
	s.mu.Unlock()
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *KVStore) usedLocked() int {
	n := 0
	for k, v := range s.data {
		n += len(k) + len(v)
	}
	return n
}

func (s *KVStore) sizeOfLocked(key string) int {
	v, ok := s.data[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}

var _ repository.KVStore = (*KVStore)(nil)
