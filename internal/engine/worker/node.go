package worker

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/backend"
	"github.com/cdolfi/explorer/internal/adapters/config"
	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/cdolfi/explorer/internal/adapters/metrics"
	"github.com/cdolfi/explorer/internal/adapters/telemetry"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/query"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the worker pool Graft node.
const NodeID graft.ID = "engine.worker"

func init() {
	graft.Register(graft.Node[*Pool]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			backend.QueueNodeID,
			backend.StatusNodeID,
			backend.CacheNodeID,
			query.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pool, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
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

			cache, err := graft.Dep[ports.ResultCache](ctx)
			if err != nil {
				return nil, err
			}

			registry, err := graft.Dep[*query.Registry](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
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

			return NewPool(queue, status, cache, registry, tracer, prom, log, Options{
				Concurrency: settings.Worker.Concurrency,
				JobTimeout:  settings.Worker.JobTimeout,
				DequeueWait: time.Second,
			}), nil
		},
	})
}
