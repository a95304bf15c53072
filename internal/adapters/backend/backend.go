// Package backend selects the cache, queue, job status store and query executor
// implementations named in the settings.
package backend

import (
	"os"

	"github.com/cdolfi/explorer/internal/adapters/badgercache"
	"github.com/cdolfi/explorer/internal/adapters/github"
	"github.com/cdolfi/explorer/internal/adapters/memcache"
	"github.com/cdolfi/explorer/internal/adapters/memqueue"
	"github.com/cdolfi/explorer/internal/adapters/rediscache"
	"github.com/cdolfi/explorer/internal/adapters/redisqueue"
	"github.com/cdolfi/explorer/internal/adapters/warehouse"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
)

// memQueueCapacity bounds the in-process queue.
const memQueueCapacity = 1024

func unknownBackend(field, value string) error {
	return zerr.With(zerr.With(domain.ErrConfigInvalid, "field", field), "value", value)
}

// NewCache returns the result cache configured in s.
func NewCache(s domain.Settings, client *redis.Client) (ports.ResultCache, error) {
	switch s.Cache.Backend {
	case domain.BackendMemory:
		return memcache.New(s.Cache.Size, s.Cache.TTL), nil
	case domain.BackendRedis:
		return rediscache.New(client, s.Cache.TTL), nil
	case domain.BackendBadger:
		return badgercache.Open(s.Cache.Path, s.Cache.TTL)
	default:
		return nil, unknownBackend("cache.backend", s.Cache.Backend)
	}
}

// NewQueue returns the job queue configured in s.
func NewQueue(s domain.Settings, client *redis.Client) (ports.JobQueue, error) {
	switch s.Queue.Backend {
	case domain.BackendMemory:
		return memqueue.NewQueue(memQueueCapacity), nil
	case domain.BackendRedis:
		return redisqueue.NewQueue(client, s.Queue.Name, WorkerID(s)), nil
	default:
		return nil, unknownBackend("queue.backend", s.Queue.Backend)
	}
}

// NewStatusStore returns the job status store configured in s.
func NewStatusStore(s domain.Settings, client *redis.Client) (ports.JobStatusStore, error) {
	switch s.Queue.Backend {
	case domain.BackendMemory:
		return memqueue.NewStatusStore(s.Queue.ClaimTTL), nil
	case domain.BackendRedis:
		return redisqueue.NewStatusStore(client, s.Queue.Name, s.Queue.ClaimTTL), nil
	default:
		return nil, unknownBackend("queue.backend", s.Queue.Backend)
	}
}

// NewExecutor returns the executor of the company activity query for the configured source.
func NewExecutor(s domain.Settings) (ports.QueryExecutor, error) {
	w := s.Warehouse
	switch w.Source {
	case domain.SourceGitHub:
		var opts []github.Option
		if w.GitHubURL != "" {
			opts = append(opts, github.WithBaseURL(w.GitHubURL))
		}
		return github.New(w.GitHubToken, w.MaxCommits, opts...)
	case domain.SourcePostgres, domain.SourceSQLite:
		db, err := warehouse.Open(w.Source, w.DSN)
		if err != nil {
			return nil, err
		}
		return warehouse.NewExecutor(db, domain.QueryCompanyActivity)
	default:
		return nil, unknownBackend("warehouse.source", w.Source)
	}
}

// WorkerID names this process's processing list. It defaults to the host name so a
// restarted worker recovers the deliveries its previous run left unacknowledged.
// Workers sharing a host need distinct worker.id values.
func WorkerID(s domain.Settings) string {
	if s.Worker.ID != "" {
		return s.Worker.ID
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "localhost"
	}
	return host
}
