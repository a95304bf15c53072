// Package redisqueue implements a reliable job queue and job status store on Redis,
// shared by serving processes and worker processes.
//
// Jobs are pushed on the left of the pending list and moved atomically from its right
// into a processing list owned by one worker. Acknowledging removes the job from the
// processing list; a worker that restarts moves whatever its previous run left there
// back to the head of the pending list. Execution is therefore at-least-once.
package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/redis/go-redis/v9"
	"go.trai.ch/zerr"
)

// Queue is a Redis list based job queue.
type Queue struct {
	client     *redis.Client
	pending    string
	processing string
}

// NewQueue creates a queue on the list named name. workerID identifies the
// processing list of this consumer; producers may pass any value.
func NewQueue(client *redis.Client, name, workerID string) *Queue {
	return &Queue{
		client:     client,
		pending:    name,
		processing: name + ":processing:" + workerID,
	}
}

// Enqueue pushes job onto the pending list.
func (q *Queue) Enqueue(ctx context.Context, job domain.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return zerr.Wrap(err, domain.ErrJobEncodeFailed.Error())
	}
	if err := q.client.LPush(ctx, q.pending, payload).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrQueueEnqueueFailed.Error()), "queue", q.pending)
	}
	return nil
}

// Dequeue moves the oldest pending job into this worker's processing list,
// waiting up to wait for one to arrive.
func (q *Queue) Dequeue(ctx context.Context, wait time.Duration) (*ports.Delivery, error) {
	payload, err := q.client.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", wait).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrQueueDequeueFailed.Error()), "queue", q.pending)
	}

	var job domain.Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		// Drop the poisoned payload so it is not recovered forever.
		_ = q.client.LRem(ctx, q.processing, 1, payload).Err()
		return nil, zerr.Wrap(err, domain.ErrJobDecodeFailed.Error())
	}

	return &ports.Delivery{
		Job: job,
		Ack: func(ctx context.Context) error {
			if err := q.client.LRem(ctx, q.processing, 1, payload).Err(); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrQueueAckFailed.Error()), "queue", q.processing)
			}
			return nil
		},
	}, nil
}

// Recover moves unacknowledged jobs from this worker's processing list back to the
// consuming end of the pending list.
func (q *Queue) Recover(ctx context.Context) (int, error) {
	recovered := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.pending, "RIGHT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return recovered, nil
		}
		if err != nil {
			return recovered, zerr.With(zerr.Wrap(err, domain.ErrQueueDequeueFailed.Error()), "queue", q.processing)
		}
		recovered++
	}
}

// Len returns the number of pending jobs.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.pending).Result()
}

// Close is a no-op; the shared client is closed by its owner.
func (q *Queue) Close() error {
	return nil
}
