package ports

import (
	"context"

	"github.com/cdolfi/explorer/internal/core/domain"
)

// QueryExecutor computes a table for a repository set.
// Implementations must be deterministic for a given input.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type QueryExecutor interface {
	Execute(ctx context.Context, repos domain.RepoSet) (*domain.Table, error)
}
