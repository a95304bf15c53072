package telemetry

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogBridge implements sdktrace.SpanProcessor by logging failed and slow spans.
type LogBridge struct {
	logger ports.Logger
	slow   time.Duration
}

// NewLogBridge returns a bridge that warns about spans running longer than slow.
// A zero slow threshold disables slow-span warnings.
func NewLogBridge(logger ports.Logger, slow time.Duration) *LogBridge {
	return &LogBridge{logger: logger, slow: slow}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span if it failed or ran past the slow threshold.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		b.logger.Warn("span failed", "span", s.Name(), "error", desc, "elapsed", elapsed.Round(time.Millisecond))
		return
	}

	if b.slow > 0 && elapsed >= b.slow {
		b.logger.Warn("slow span", "span", s.Name(), "elapsed", elapsed.Round(time.Millisecond))
	}
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

// NewProvider builds a tracer provider reporting spans through the bridge.
func NewProvider(bridge *LogBridge) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
}
