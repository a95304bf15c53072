package query

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/backend"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the query registry Graft node.
const NodeID graft.ID = "engine.query"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{backend.ExecutorNodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			exec, err := graft.Dep[ports.QueryExecutor](ctx)
			if err != nil {
				return nil, err
			}

			r := NewRegistry()
			if err := r.Register(domain.QueryCompanyActivity, exec); err != nil {
				return nil, err
			}
			return r, nil
		},
	})
}
