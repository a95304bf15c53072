// Package rediscache implements ports.ResultCache on Redis, shared by every
// serving and worker process.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "explorer:cache:"

// Cache stores each table as one JSON string written with a single SET,
// so readers observe either the old or the new value.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a cache whose entries expire after ttl.
func New(client *redis.Client, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{client: client, prefix: DefaultPrefix, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(k domain.CacheKey) string {
	return c.prefix + k.String()
}

// Get returns the table stored under key, or nil if absent.
func (c *Cache) Get(ctx context.Context, key domain.CacheKey) (*domain.Table, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key.String())
	}

	var table domain.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "key", key.String())
	}
	return &table, nil
}

// Put stores table under key with the configured TTL.
func (c *Cache) Put(ctx context.Context, key domain.CacheKey, table *domain.Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTableMarshalFailed.Error())
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key.String())
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key domain.CacheKey) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key.String())
	}
	return nil
}

// Close is a no-op; the shared client is closed by its owner.
func (c *Cache) Close() error {
	return nil
}
