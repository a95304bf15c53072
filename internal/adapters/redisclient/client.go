// Package redisclient builds the shared Redis connection used by the Redis-backed
// cache, queue and job status store.
package redisclient

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
)

// ErrRedisUnavailable is returned when the Redis server does not answer a ping.
var ErrRedisUnavailable = zerr.New("redis unavailable")

// New parses url and returns a client. The connection is established lazily.
func New(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "field", "redis.url")
	}
	return redis.NewClient(opts), nil
}

// Ping checks that the server answers within timeout.
func Ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return zerr.Wrap(err, ErrRedisUnavailable.Error())
	}
	return nil
}
