package backend

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/config"
	"github.com/cdolfi/explorer/internal/adapters/redisclient"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/grindlemire/graft"
	"github.com/redis/go-redis/v9"
)

const (
	// CacheNodeID is the unique identifier for the result cache Graft node.
	CacheNodeID graft.ID = "adapter.backend.cache"
	// QueueNodeID is the unique identifier for the job queue Graft node.
	QueueNodeID graft.ID = "adapter.backend.queue"
	// StatusNodeID is the unique identifier for the job status store Graft node.
	StatusNodeID graft.ID = "adapter.backend.status"
	// ExecutorNodeID is the unique identifier for the query executor Graft node.
	ExecutorNodeID graft.ID = "adapter.backend.executor"
)

func init() {
	graft.Register(graft.Node[ports.ResultCache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, redisclient.NodeID},
		Run: func(ctx context.Context) (ports.ResultCache, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			client, err := graft.Dep[*redis.Client](ctx)
			if err != nil {
				return nil, err
			}

			return NewCache(settings, client)
		},
	})

	graft.Register(graft.Node[ports.JobQueue]{
		ID:        QueueNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, redisclient.NodeID},
		Run: func(ctx context.Context) (ports.JobQueue, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			client, err := graft.Dep[*redis.Client](ctx)
			if err != nil {
				return nil, err
			}

			return NewQueue(settings, client)
		},
	})

	graft.Register(graft.Node[ports.JobStatusStore]{
		ID:        StatusNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, redisclient.NodeID},
		Run: func(ctx context.Context) (ports.JobStatusStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			client, err := graft.Dep[*redis.Client](ctx)
			if err != nil {
				return nil, err
			}

			return NewStatusStore(settings, client)
		},
	})

	graft.Register(graft.Node[ports.QueryExecutor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.QueryExecutor, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(settings)
		},
	})
}
