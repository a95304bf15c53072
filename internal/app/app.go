// Package app implements the application layer for explorer.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/control"
	"github.com/cdolfi/explorer/internal/adapters/httpapi"
	"github.com/cdolfi/explorer/internal/adapters/redisclient"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/query"
	"github.com/cdolfi/explorer/internal/engine/viz"
	"github.com/cdolfi/explorer/internal/engine/worker"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const redisPingTimeout = 5 * time.Second

// Dialer connects to a worker's control socket.
type Dialer func(socketPath string) (ports.WorkerClient, error)

// App represents the main application logic.
type App struct {
	settings   domain.Settings
	logger     ports.Logger
	renderer   *viz.Renderer
	dispatcher ports.Dispatcher
	pool       *worker.Pool
	queries    *query.Registry
	cache      ports.ResultCache
	queue      ports.JobQueue
	metrics    http.Handler
	dial       Dialer
	redis      *redis.Client
}

// New creates a new App instance.
func New(
	settings domain.Settings,
	log ports.Logger,
	renderer *viz.Renderer,
	dispatcher ports.Dispatcher,
	pool *worker.Pool,
	queries *query.Registry,
	cache ports.ResultCache,
	queue ports.JobQueue,
	metrics http.Handler,
) *App {
	return &App{
		settings:   settings,
		logger:     log,
		renderer:   renderer,
		dispatcher: dispatcher,
		pool:       pool,
		queries:    queries,
		cache:      cache,
		queue:      queue,
		metrics:    metrics,
		dial: func(socketPath string) (ports.WorkerClient, error) {
			return control.Dial(socketPath)
		},
	}
}

// WithDialer replaces how the App reaches a worker's control socket.
// This is primarily used for testing.
func (a *App) WithDialer(dial Dialer) *App {
	a.dial = dial
	return a
}

// WithRedis hands the shared Redis client to the App. It is pinged before serving
// or working when a backend uses it, and closed with the App.
func (a *App) WithRedis(client *redis.Client) *App {
	a.redis = client
	return a
}

// Registry returns the visualization registry.
func (a *App) Registry() *viz.Registry {
	return a.renderer.Registry()
}

// Render awaits and draws one visualization.
func (a *App) Render(
	ctx context.Context, id domain.VizID, repos domain.RepoSet, params domain.VizParams,
) (domain.Rendered, error) {
	return a.renderer.Render(ctx, id, repos, params)
}

// DateBounds returns the date picker bounds of one visualization.
func (a *App) DateBounds(ctx context.Context, id domain.VizID, repos domain.RepoSet) (viz.Bounds, error) {
	return a.renderer.DateBounds(ctx, id, repos)
}

// Prefetch submits one job per distinct query the page needs.
func (a *App) Prefetch(ctx context.Context, page domain.PageName, repos domain.RepoSet) ([]domain.JobHandle, error) {
	queries, err := a.Registry().Queries(page)
	if err != nil {
		return nil, err
	}

	handles := make([]domain.JobHandle, 0, len(queries))
	for _, q := range queries {
		h, err := a.dispatcher.Submit(ctx, domain.NewJob(q, repos))
		if err != nil {
			return nil, zerr.With(err, "query", q.String())
		}
		handles = append(handles, h)
	}
	a.logger.Info("page prefetched", "page", string(page), "repos", repos.String(), "jobs", len(handles))
	return handles, nil
}

// Serve runs the HTTP API until ctx is canceled. With the in-memory queue the
// worker pool runs in the same process.
func (a *App) Serve(ctx context.Context) error {
	if err := a.checkBackends(ctx); err != nil {
		return err
	}

	server := httpapi.NewServer(a.settings.Server.Addr, httpapi.NewHandler(a, a.metrics, a.logger))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx)
	})
	if a.embeddedWorker() {
		g.Go(func() error {
			return a.pool.Run(ctx)
		})
	}

	a.logger.Info("serving", "addr", a.settings.Server.Addr, "embedded_worker", a.embeddedWorker())
	return g.Wait()
}

// RenderOnce draws one visualization outside of the HTTP server. With the
// in-memory queue a worker pool runs for the duration of the call.
func (a *App) RenderOnce(
	ctx context.Context, id domain.VizID, repos domain.RepoSet, params domain.VizParams,
) (domain.Rendered, error) {
	if !a.embeddedWorker() {
		return a.Render(ctx, id, repos, params)
	}

	poolCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- a.pool.Run(poolCtx)
	}()

	rendered, err := a.Render(ctx, id, repos, params)
	cancel()
	return rendered, errors.Join(err, <-done)
}

// CacheClear removes the cache entry of query for repos.
func (a *App) CacheClear(ctx context.Context, q domain.QueryID, repos domain.RepoSet) error {
	if repos.Empty() {
		return domain.ErrEmptyRepoSet
	}
	if _, err := a.queries.Executor(q); err != nil {
		return err
	}

	key := domain.NewCacheKey(q, repos)
	if err := a.cache.Delete(ctx, key); err != nil {
		return err
	}
	a.logger.Info("cache entry cleared", "key", key.String())
	return nil
}

// Queries returns the registered query identities.
func (a *App) Queries() []domain.QueryID {
	return a.queries.IDs()
}

// Close releases the cache and queue backends, then the Redis client.
func (a *App) Close() error {
	err := errors.Join(a.queue.Close(), a.cache.Close())
	if a.redis != nil {
		if cerr := a.redis.Close(); cerr != nil && !errors.Is(cerr, redis.ErrClosed) {
			err = errors.Join(err, cerr)
		}
	}
	return err
}

func (a *App) checkBackends(ctx context.Context) error {
	if a.redis == nil || !a.usesRedis() {
		return nil
	}
	return redisclient.Ping(ctx, a.redis, redisPingTimeout)
}

func (a *App) usesRedis() bool {
	return a.settings.Cache.Backend == domain.BackendRedis || a.settings.Queue.Backend == domain.BackendRedis
}

func (a *App) embeddedWorker() bool {
	return a.settings.Queue.Backend == domain.BackendMemory
}
