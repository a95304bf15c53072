package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/cdolfi/explorer/internal/adapters/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("worker started") },
			goldenName: "info_basic",
		},
		{
			name:       "info with attributes",
			log:        func(l *logger.Logger) { l.Info("job enqueued", "query", "company-associated-activity", "repos", 2) },
			goldenName: "info_attrs",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("job status unavailable") },
			goldenName: "warn_basic",
		},
		{
			name:       "error",
			log:        func(l *logger.Logger) { l.Error(os.ErrPermission) },
			goldenName: "error_simple",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(zerr.Wrap(errors.New("connection refused"), "warehouse query failed"))

	out := buf.String()
	assert.Contains(t, out, "Error: warehouse query failed")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ connection refused")
}

func TestLogger_Error_StdlibChain(t *testing.T) {
	inner := errors.New("connection refused")
	outer := fmt.Errorf("dial redis: %w", inner)

	lg, buf := newTestLogger(t)
	lg.Error(outer)

	assert.Equal(t, "✗ Error: dial redis: connection refused\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestFormatChain_Multiline(t *testing.T) {
	got := logger.FormatChain(errors.New("yaml: unmarshal errors:\n  line 3: bad"))
	assert.Equal(t, "Error: yaml: unmarshal errors:\n         line 3: bad", got)
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(errors.New("boom"), "job execution failed"), "key", "company:1"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "job execution failed")
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.Info("job done", "state", "succeeded")
	assert.Contains(t, buf.String(), `"state":"succeeded"`)
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	assert.Contains(t, buf.String(), "✗")
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("json"))
	assert.Contains(t, buf.String(), `"error"`)
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))
	assert.Contains(t, buf.String(), "✗")
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Info("concurrent", "i", i)
			lg.Warn("concurrent")
			lg.Error(errors.New("concurrent"))
			lg.SetJSON(i%2 == 0)
		}()
	}
	wg.Wait()
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_GroupAndAttrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	var h slog.Handler = logger.NewPrettyHandler(buf, nil)
	h = h.WithGroup("job").WithAttrs([]slog.Attr{slog.String("key", "company:1")})

	slog.New(h).Info("claimed", "ttl", "24h0m0s")

	g := goldie.New(t)
	g.Assert(t, "handler_group_attrs", buf.Bytes())
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}
