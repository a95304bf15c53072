package control_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/control"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStatus ports.WorkerStatus

func (f fixedStatus) Status() ports.WorkerStatus { return ports.WorkerStatus(f) }

// socketPath keeps the path short enough for sun_path limits.
func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "ctl")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "w.sock")
}

func startServer(t *testing.T, path string, src control.StatusSource) (*control.Lifecycle, <-chan error) {
	t.Helper()
	lc := control.NewLifecycle()
	srv := control.NewServer(path, lc, src)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(t.Context()) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	return lc, done
}

func TestControl_StatusAndShutdown(t *testing.T) {
	path := socketPath(t)
	last := time.Unix(1700000000, 0)
	lc, done := startServer(t, path, fixedStatus{Active: 2, Succeeded: 5, Failed: 1, LastActivity: last})

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SocketPerm), info.Mode().Perm())

	client, err := control.Dial(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), status.PID)
	assert.Equal(t, 2, status.Active)
	assert.Equal(t, 5, status.Succeeded)
	assert.Equal(t, 1, status.Failed)
	assert.True(t, last.Equal(status.LastActivity))
	assert.GreaterOrEqual(t, status.Uptime, time.Duration(0))

	require.NoError(t, client.Shutdown(ctx))

	select {
	case <-lc.ShutdownChan():
	case <-time.After(5 * time.Second):
		t.Fatal("expected shutdown to be requested")
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestControl_NoWorker(t *testing.T) {
	client, err := control.Dial(socketPath(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	_, err = client.Status(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrControlUnavailable.Error())
}

func TestLifecycle_ShutdownIsIdempotent(t *testing.T) {
	lc := control.NewLifecycle()
	lc.Shutdown()
	lc.Shutdown()

	select {
	case <-lc.ShutdownChan():
	default:
		t.Fatal("expected closed shutdown channel")
	}
	assert.GreaterOrEqual(t, lc.Uptime(), time.Duration(0))
}
