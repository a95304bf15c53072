package app

import (
	"context"

	"github.com/cdolfi/explorer/internal/adapters/control"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RunWorker consumes the shared queue until ctx is canceled or a shutdown is
// requested over the control socket.
func (a *App) RunWorker(ctx context.Context) error {
	if a.embeddedWorker() {
		return zerr.With(
			zerr.Wrap(domain.ErrConfigInvalid, "a standalone worker needs a shared queue"),
			"queue.backend", a.settings.Queue.Backend,
		)
	}

	if err := a.checkBackends(ctx); err != nil {
		return err
	}

	lifecycle := control.NewLifecycle()
	server := control.NewServer(a.settings.Worker.ControlSocket, lifecycle, a.pool)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Serve returns once a shutdown is requested; stop the pool with it.
		defer cancel()
		return server.Serve(ctx)
	})
	g.Go(func() error {
		return a.pool.Run(ctx)
	})

	a.logger.Info("worker listening", "socket", a.settings.Worker.ControlSocket)
	err := g.Wait()
	a.logger.Info("worker stopped", "uptime", lifecycle.Uptime().String())
	return err
}

// WorkerStatus asks the local worker for its status.
func (a *App) WorkerStatus(ctx context.Context) (*ports.WorkerStatus, error) {
	client, err := a.dial(a.settings.Worker.ControlSocket)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	return client.Status(ctx)
}

// StopWorker asks the local worker to shut down.
func (a *App) StopWorker(ctx context.Context) error {
	client, err := a.dial(a.settings.Worker.ControlSocket)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Shutdown(ctx); err != nil {
		return err
	}
	a.logger.Info("worker stop requested", "socket", a.settings.Worker.ControlSocket)
	return nil
}
