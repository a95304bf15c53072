package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
)

// StatusStore keeps claims and job statuses in Redis.
type StatusStore struct {
	client    *redis.Client
	prefix    string
	statusTTL time.Duration
}

// NewStatusStore creates a store namespaced under prefix whose statuses expire after statusTTL.
func NewStatusStore(client *redis.Client, prefix string, statusTTL time.Duration) *StatusStore {
	return &StatusStore{client: client, prefix: prefix, statusTTL: statusTTL}
}

func (s *StatusStore) claimKey(key string) string  { return s.prefix + ":claim:" + key }
func (s *StatusStore) statusKey(key string) string { return s.prefix + ":status:" + key }

// Claim sets the claim key only if it does not exist yet.
func (s *StatusStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.claimKey(key), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrJobStatusFailed.Error()), "key", key)
	}
	return ok, nil
}

// Release deletes the claim key.
func (s *StatusStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.claimKey(key)).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJobStatusFailed.Error()), "key", key)
	}
	return nil
}

// SetStatus stores status as JSON.
func (s *StatusStore) SetStatus(ctx context.Context, key string, status domain.JobStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return zerr.Wrap(err, domain.ErrJobEncodeFailed.Error())
	}
	if err := s.client.Set(ctx, s.statusKey(key), data, s.statusTTL).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrJobStatusFailed.Error()), "key", key)
	}
	return nil
}

// Status returns the stored status for key, or nil.
func (s *StatusStore) Status(ctx context.Context, key string) (*domain.JobStatus, error) {
	data, err := s.client.Get(ctx, s.statusKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJobStatusFailed.Error()), "key", key)
	}

	var status domain.JobStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, zerr.Wrap(err, domain.ErrJobDecodeFailed.Error())
	}
	return &status, nil
}
