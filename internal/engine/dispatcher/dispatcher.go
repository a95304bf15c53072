// Package dispatcher submits jobs for missing cache entries to the job queue,
// collapsing duplicate submissions for a cache key that is already in flight.
package dispatcher

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Dispatch results reported to metrics.
const (
	ResultEnqueued     = "enqueued"
	ResultDeduplicated = "deduplicated"
	ResultCached       = "cached"
	ResultError        = "error"
)

// Dispatcher implements ports.Dispatcher.
//
// Concurrent submissions inside one process share a single claim attempt through a
// singleflight group. Across processes, the job status store claim decides which
// submission enqueues; the claim is held until a worker finishes the job or it expires.
type Dispatcher struct {
	cache    ports.ResultCache
	queue    ports.JobQueue
	status   ports.JobStatusStore
	metrics  ports.Metrics
	logger   ports.Logger
	claimTTL time.Duration

	group singleflight.Group
	now   func() time.Time
}

// New creates a dispatcher. claimTTL bounds how long a key stays claimed by a job
// that never reports back.
func New(
	cache ports.ResultCache,
	queue ports.JobQueue,
	status ports.JobStatusStore,
	metrics ports.Metrics,
	logger ports.Logger,
	claimTTL time.Duration,
) *Dispatcher {
	return &Dispatcher{
		cache:    cache,
		queue:    queue,
		status:   status,
		metrics:  metrics,
		logger:   logger,
		claimTTL: claimTTL,
		now:      time.Now,
	}
}

// Submit enqueues job unless its cache entry is present or a job for the same key
// is already in flight.
func (d *Dispatcher) Submit(ctx context.Context, job domain.Job) (domain.JobHandle, error) {
	if job.Repos.Empty() {
		return domain.JobHandle{}, domain.ErrEmptyRepoSet
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = d.now().UTC()
	}

	key := job.Key().String()
	leader := false

	v, err, _ := d.group.Do(key, func() (any, error) {
		leader = true
		return d.claimAndEnqueue(ctx, key, job)
	})
	if err != nil {
		d.metrics.Dispatched(ResultError)
		return domain.JobHandle{}, err
	}

	handle := v.(domain.JobHandle)
	if !leader && !handle.Cached {
		handle.Deduplicated = true
		handle.SubmittedAt = job.SubmittedAt
	}

	result := ResultEnqueued
	switch {
	case handle.Cached:
		result = ResultCached
	case handle.Deduplicated:
		result = ResultDeduplicated
	}
	d.metrics.Dispatched(result)
	d.logger.Info("job submitted", "query", job.Query.String(), "key", key, "result", result)
	return handle, nil
}

func (d *Dispatcher) claimAndEnqueue(ctx context.Context, key string, job domain.Job) (domain.JobHandle, error) {
	handle := domain.JobHandle{Key: key, SubmittedAt: job.SubmittedAt}

	table, err := d.cache.Get(ctx, job.Key())
	if err != nil {
		return handle, err
	}
	if table != nil {
		handle.Cached = true
		return handle, nil
	}

	claimed, err := d.status.Claim(ctx, key, d.claimTTL)
	if err != nil {
		return handle, err
	}
	if !claimed {
		handle.Deduplicated = true
		return handle, nil
	}

	pending := domain.JobStatus{State: domain.JobPending, UpdatedAt: job.SubmittedAt}
	if err := d.status.SetStatus(ctx, key, pending); err != nil {
		_ = d.status.Release(ctx, key)
		return handle, err
	}

	if err := d.queue.Enqueue(ctx, job); err != nil {
		_ = d.status.Release(ctx, key)
		return handle, err
	}
	return handle, nil
}
