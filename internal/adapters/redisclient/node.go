package redisclient

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/config"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/grindlemire/graft"
	"github.com/redis/go-redis/v9"
)

// NodeID is the unique identifier for the Redis client Graft node.
const NodeID graft.ID = "adapter.redis_client"

func init() {
	graft.Register(graft.Node[*redis.Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*redis.Client, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.Redis.URL)
		},
	})
}
