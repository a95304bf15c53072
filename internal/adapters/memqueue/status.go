package memqueue

import (
	"context"
	"sync"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// statusCapacity bounds how many job statuses are remembered.
const statusCapacity = 4096

// StatusStore keeps claims and job statuses in memory.
type StatusStore struct {
	mu       sync.Mutex
	claims   map[string]time.Time
	statuses *expirable.LRU[string, domain.JobStatus]
}

// NewStatusStore creates a store whose statuses expire after ttl.
func NewStatusStore(ttl time.Duration) *StatusStore {
	return &StatusStore{
		claims:   make(map[string]time.Time),
		statuses: expirable.NewLRU[string, domain.JobStatus](statusCapacity, nil, ttl),
	}
}

// Claim marks key as in flight until ttl elapses or it is released.
func (s *StatusStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expires, ok := s.claims[key]; ok && now.Before(expires) {
		return false, nil
	}
	s.claims[key] = now.Add(ttl)
	return true, nil
}

// Release drops the claim for key.
func (s *StatusStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.claims, key)
	return nil
}

// SetStatus records status for key.
func (s *StatusStore) SetStatus(_ context.Context, key string, status domain.JobStatus) error {
	s.statuses.Add(key, status)
	return nil
}

// Status returns the recorded status for key, or nil.
func (s *StatusStore) Status(_ context.Context, key string) (*domain.JobStatus, error) {
	status, ok := s.statuses.Get(key)
	if !ok {
		return nil, nil
	}
	return &status, nil
}
