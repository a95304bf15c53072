package await

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/backend"
	"github.com/cdolfi/explorer/internal/adapters/config"
	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/cdolfi/explorer/internal/adapters/metrics"
	"github.com/cdolfi/explorer/internal/adapters/telemetry"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/dispatcher"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the awaiter Graft node.
const NodeID graft.ID = "engine.await"

func init() {
	graft.Register(graft.Node[*Awaiter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			backend.CacheNodeID,
			backend.StatusNodeID,
			dispatcher.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Awaiter, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.ResultCache](ctx)
			if err != nil {
				return nil, err
			}

			status, err := graft.Dep[ports.JobStatusStore](ctx)
			if err != nil {
				return nil, err
			}

			d, err := graft.Dep[*dispatcher.Dispatcher](ctx)
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

			return New(cache, d, status, tracer, prom, log, Options{
				Interval: settings.Poll.Interval,
				Deadline: settings.Poll.Deadline,
			}), nil
		},
	})
}
