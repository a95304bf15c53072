// Package config loads explorer settings from a YAML file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	// Getenv resolves ${VAR} references. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a Loader that expands references from the process environment.
func NewLoader() *Loader {
	return &Loader{Getenv: os.Getenv}
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads settings from path, layered over domain.DefaultSettings.
// A missing file yields the defaults.
func (l *Loader) Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	// #nosec G304 -- path is chosen by the operator
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(l.expand(data), &file); err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := apply(&settings, &file); err != nil {
		return settings, zerr.With(err, "path", path)
	}
	if err := Validate(settings); err != nil {
		return settings, zerr.With(err, "path", path)
	}
	return settings, nil
}

func (l *Loader) expand(data []byte) []byte {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		return []byte(getenv(string(name)))
	})
}

func apply(s *domain.Settings, f *File) error {
	setString(&s.Server.Addr, f.Server.Addr)
	setString(&s.Redis.URL, f.Redis.URL)

	setString(&s.Cache.Backend, f.Cache.Backend)
	setInt(&s.Cache.Size, f.Cache.Size)
	setString(&s.Cache.Path, f.Cache.Path)

	setString(&s.Queue.Backend, f.Queue.Backend)
	setString(&s.Queue.Name, f.Queue.Name)

	setInt(&s.Worker.Concurrency, f.Worker.Concurrency)
	setString(&s.Worker.ControlSocket, f.Worker.ControlSocket)
	setString(&s.Worker.ID, f.Worker.ID)

	setString(&s.Warehouse.Source, f.Warehouse.Source)
	setString(&s.Warehouse.DSN, f.Warehouse.DSN)
	setString(&s.Warehouse.GitHubToken, f.Warehouse.GitHubToken)
	setString(&s.Warehouse.GitHubURL, f.Warehouse.GitHubURL)
	setInt(&s.Warehouse.MaxCommits, f.Warehouse.MaxCommits)

	s.Log.JSON = f.Log.JSON

	durations := []struct {
		field  string
		raw    string
		target *time.Duration
	}{
		{"cache.ttl", f.Cache.TTL, &s.Cache.TTL},
		{"queue.claimTTL", f.Queue.ClaimTTL, &s.Queue.ClaimTTL},
		{"worker.jobTimeout", f.Worker.JobTimeout, &s.Worker.JobTimeout},
		{"poll.interval", f.Poll.Interval, &s.Poll.Interval},
		{"poll.deadline", f.Poll.Deadline, &s.Poll.Deadline},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "field", d.field)
		}
		*d.target = parsed
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate checks backend names and that sizes and durations are positive.
func Validate(s domain.Settings) error {
	enums := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"cache.backend", s.Cache.Backend, []string{domain.BackendMemory, domain.BackendRedis, domain.BackendBadger}},
		{"queue.backend", s.Queue.Backend, []string{domain.BackendMemory, domain.BackendRedis}},
		{
			"warehouse.source", s.Warehouse.Source,
			[]string{domain.SourcePostgres, domain.SourceSQLite, domain.SourceGitHub},
		},
	}
	for _, e := range enums {
		if !slices.Contains(e.allowed, e.value) {
			return zerr.With(zerr.With(domain.ErrConfigInvalid, "field", e.field), "value", e.value)
		}
	}

	// Standalone workers publish results through the cache, so it must be shared too.
	if s.Queue.Backend == domain.BackendRedis && s.Cache.Backend != domain.BackendRedis {
		return zerr.With(zerr.With(domain.ErrConfigInvalid, "field", "cache.backend"), "value", s.Cache.Backend)
	}

	positive := []struct {
		field string
		ok    bool
	}{
		{"cache.size", s.Cache.Size > 0},
		{"cache.ttl", s.Cache.TTL > 0},
		{"queue.claimTTL", s.Queue.ClaimTTL > 0},
		{"worker.concurrency", s.Worker.Concurrency > 0},
		{"worker.jobTimeout", s.Worker.JobTimeout > 0},
		{"poll.interval", s.Poll.Interval > 0},
		{"poll.deadline", s.Poll.Deadline > 0},
		{"warehouse.maxCommits", s.Warehouse.MaxCommits > 0},
	}
	for _, p := range positive {
		if !p.ok {
			return zerr.With(domain.ErrConfigInvalid, "field", p.field)
		}
	}
	return nil
}
