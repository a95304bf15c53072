package viz

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/await"
	"github.com/grindlemire/graft"
)

const (
	// RegistryNodeID is the unique identifier for the visualization registry Graft node.
	RegistryNodeID graft.ID = "engine.viz.registry"
	// NodeID is the unique identifier for the renderer Graft node.
	NodeID graft.ID = "engine.viz"
)

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return NewDefaultRegistry()
		},
	})

	graft.Register(graft.Node[*Renderer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			RegistryNodeID,
			await.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Renderer, error) {
			registry, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}

			awaiter, err := graft.Dep[*await.Awaiter](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRenderer(registry, awaiter, log), nil
		},
	})
}
