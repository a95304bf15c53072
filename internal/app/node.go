package app

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/backend"
	"github.com/cdolfi/explorer/internal/adapters/config" //nolint:depguard // Wired in app layer
	"github.com/cdolfi/explorer/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"github.com/cdolfi/explorer/internal/adapters/metrics"
	"github.com/cdolfi/explorer/internal/adapters/redisclient"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/dispatcher"
	"github.com/cdolfi/explorer/internal/engine/query"
	"github.com/cdolfi/explorer/internal/engine/viz"
	"github.com/cdolfi/explorer/internal/engine/worker"
	"github.com/grindlemire/graft"
	"github.com/redis/go-redis/v9"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			viz.NodeID,
			dispatcher.NodeID,
			worker.NodeID,
			query.NodeID,
			backend.CacheNodeID,
			backend.QueueNodeID,
			metrics.NodeID,
			redisclient.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[*viz.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	d, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	pool, err := graft.Dep[*worker.Pool](ctx)
	if err != nil {
		return nil, err
	}

	queries, err := graft.Dep[*query.Registry](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ResultCache](ctx)
	if err != nil {
		return nil, err
	}

	queue, err := graft.Dep[ports.JobQueue](ctx)
	if err != nil {
		return nil, err
	}

	prom, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[*redis.Client](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, log, renderer, d, pool, queries, cache, queue, prom.Handler()).WithRedis(client), nil
}
