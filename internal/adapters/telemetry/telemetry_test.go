package telemetry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/telemetry"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func TestOTelTracer_RecordsAttributesAndErrors(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	tracer := telemetry.NewOTelTracerFrom(tp, "test")
	_, span := tracer.Start(t.Context(), "job.execute")
	span.SetAttribute("query", "company-associated-activity")
	span.SetAttribute("repos", 3)
	span.SetAttribute("deduplicated", true)
	span.SetAttribute("elapsed", 2*time.Second)
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	got := spans[0]

	assert.Equal(t, "job.execute", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)
	assert.Contains(t, got.Attributes(), attribute.String("query", "company-associated-activity"))
	assert.Contains(t, got.Attributes(), attribute.Int("repos", 3))
	assert.Contains(t, got.Attributes(), attribute.Bool("deduplicated", true))
	assert.Contains(t, got.Attributes(), attribute.String("elapsed", "2s"))
	require.Len(t, got.Events(), 1)
}

func TestLogBridge_WarnsOnFailedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("span failed", gomock.Any()).Times(1)

	tp := telemetry.NewProvider(telemetry.NewLogBridge(log, 0))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	tracer := telemetry.NewOTelTracerFrom(tp, "test")
	_, ok := tracer.Start(t.Context(), "viz.await")
	ok.End()

	_, failed := tracer.Start(t.Context(), "job.execute")
	failed.RecordError(errors.New("warehouse down"))
	failed.End()
}

func TestLogBridge_WarnsOnSlowSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("slow span", gomock.Any()).Times(1)

	tp := telemetry.NewProvider(telemetry.NewLogBridge(log, time.Nanosecond))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	_, span := telemetry.NewOTelTracerFrom(tp, "test").Start(t.Context(), "job.execute")
	time.Sleep(time.Millisecond)
	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(t.Context(), "test-span")
	assert.Equal(t, t.Context(), ctx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
