// Package query maps query identities to the executors that compute them.
package query

import (
	"maps"
	"slices"
	"sync"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry holds one executor per query identity. Registrations are write-once.
type Registry struct {
	mu        sync.RWMutex
	executors map[domain.QueryID]ports.QueryExecutor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[domain.QueryID]ports.QueryExecutor)}
}

// Register binds an executor to a query identity.
func (r *Registry) Register(id domain.QueryID, exec ports.QueryExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.executors[id]; ok {
		return zerr.With(domain.ErrQueryAlreadyRegistered, "query", id.String())
	}
	r.executors[id] = exec
	return nil
}

// Executor returns the executor registered for id.
func (r *Registry) Executor(id domain.QueryID) (ports.QueryExecutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exec, ok := r.executors[id]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownQuery, "query", id.String())
	}
	return exec, nil
}

// IDs returns the registered identities in sorted order.
func (r *Registry) IDs() []domain.QueryID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.executors))
}
