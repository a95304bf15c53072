package dispatcher

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/backend"
	"github.com/cdolfi/explorer/internal/adapters/config"
	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/cdolfi/explorer/internal/adapters/metrics"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			backend.CacheNodeID,
			backend.QueueNodeID,
			backend.StatusNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
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

			status, err := graft.Dep[ports.JobStatusStore](ctx)
			if err != nil {
				return nil, err
			}

			prom, err := graft.Dep[*metrics.Prometheus](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(cache, queue, status, prom, log, settings.Queue.ClaimTTL), nil
		},
	})
}
