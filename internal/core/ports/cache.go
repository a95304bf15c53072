// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/cdolfi/explorer/internal/core/domain"
)

// ResultCache stores computed tables by query identity and repository set.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResultCache interface {
	// Get returns the table stored under key.
	// Returns nil, nil if the entry is absent or evicted.
	Get(ctx context.Context, key domain.CacheKey) (*domain.Table, error)

	// Put stores the table under key, replacing any previous value as a whole.
	Put(ctx context.Context, key domain.CacheKey, table *domain.Table) error

	// Delete removes the entry for key. Deleting an absent entry is not an error.
	Delete(ctx context.Context, key domain.CacheKey) error

	// Close releases backend resources.
	Close() error
}
