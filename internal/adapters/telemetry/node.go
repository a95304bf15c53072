package telemetry

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// SlowSpan is the duration after which a finished span is reported as slow.
const SlowSpan = 30 * time.Second

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			otel.SetTracerProvider(NewProvider(NewLogBridge(log, SlowSpan)))
			return NewOTelTracer(InstrumentationName), nil
		},
	})
}
