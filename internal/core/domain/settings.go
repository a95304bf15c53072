package domain

import "time"

// Backend names accepted in settings.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"

	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceGitHub   = "github"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	Server    ServerSettings
	Redis     RedisSettings
	Cache     CacheSettings
	Queue     QueueSettings
	Worker    WorkerSettings
	Poll      PollSettings
	Warehouse WarehouseSettings
	Log       LogSettings
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string
}

// RedisSettings configures the shared Redis connection.
type RedisSettings struct {
	URL string
}

// CacheSettings configures the result cache.
type CacheSettings struct {
	Backend string
	TTL     time.Duration
	Size    int
	Path    string
}

// QueueSettings configures the job queue and the job status store.
type QueueSettings struct {
	Backend  string
	Name     string
	ClaimTTL time.Duration
}

// WorkerSettings configures the worker pool.
type WorkerSettings struct {
	Concurrency   int
	JobTimeout    time.Duration
	ControlSocket string
	// ID names the worker's processing list. Defaults to hostname and pid.
	ID string
}

// PollSettings bounds how visualizations wait for data.
type PollSettings struct {
	Interval time.Duration
	Deadline time.Duration
}

// WarehouseSettings selects and configures the query executor source.
type WarehouseSettings struct {
	Source      string
	DSN         string
	GitHubToken string
	GitHubURL   string
	MaxCommits  int
}

// LogSettings configures the logger.
type LogSettings struct {
	JSON bool
}

// DefaultSettings returns settings suitable for a single local process.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Addr: ":8050"},
		Redis:  RedisSettings{URL: "redis://localhost:6379/0"},
		Cache: CacheSettings{
			Backend: BackendMemory,
			TTL:     24 * time.Hour,
			Size:    1024,
			Path:    DefaultCachePath(),
		},
		Queue: QueueSettings{
			Backend:  BackendMemory,
			Name:     "explorer:jobs",
			ClaimTTL: 24 * time.Hour,
		},
		Worker: WorkerSettings{
			Concurrency:   4,
			JobTimeout:    23*time.Hour + 30*time.Minute,
			ControlSocket: DefaultControlSocketPath(),
		},
		Poll: PollSettings{
			Interval: time.Second,
			Deadline: 5 * time.Minute,
		},
		Warehouse: WarehouseSettings{
			Source:     SourceSQLite,
			DSN:        "file:explorer.db?mode=ro",
			MaxCommits: 500,
		},
	}
}
