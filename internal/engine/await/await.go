// Package await waits for a job's cache entry with a deadline.
//
// A request first reads the cache. On a miss it submits the job (duplicate submissions
// collapse in the dispatcher) and polls the cache and the job status at a fixed interval
// until the table arrives, the job fails, the deadline passes or the caller gives up.
package await

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures polling.
type Options struct {
	Interval time.Duration
	Deadline time.Duration
}

// Awaiter resolves jobs to tables.
type Awaiter struct {
	cache      ports.ResultCache
	dispatcher ports.Dispatcher
	status     ports.JobStatusStore
	tracer     ports.Tracer
	metrics    ports.Metrics
	logger     ports.Logger
	opts       Options
}

// New creates an Awaiter.
func New(
	cache ports.ResultCache,
	dispatcher ports.Dispatcher,
	status ports.JobStatusStore,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
	opts Options,
) *Awaiter {
	return &Awaiter{
		cache:      cache,
		dispatcher: dispatcher,
		status:     status,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
		opts:       opts,
	}
}

// Await returns the job's table once it is cached.
func (a *Awaiter) Await(ctx context.Context, job domain.Job) domain.Outcome {
	ctx, span := a.tracer.Start(ctx, "viz.await")
	defer span.End()
	span.SetAttribute("query", job.Query.String())
	span.SetAttribute("repos", job.Repos.Len())

	out := a.await(ctx, job)
	span.SetAttribute("state", string(out.State))
	if out.State == domain.AwaitFailed {
		span.RecordError(out.Err)
	}
	return out
}

func (a *Awaiter) await(ctx context.Context, job domain.Job) domain.Outcome {
	key := job.Key()

	table, err := a.cache.Get(ctx, key)
	if err != nil {
		return domain.Failed(zerr.Wrap(err, domain.ErrAwaitFailed.Error()))
	}
	a.metrics.CacheLookup(table != nil)
	if table != nil {
		return domain.Ready(table)
	}

	handle, err := a.dispatcher.Submit(ctx, job)
	if err != nil {
		return domain.Failed(zerr.Wrap(err, domain.ErrAwaitFailed.Error()))
	}
	if handle.Cached {
		// Written between the first read and the submission.
		if out, done := a.poll(ctx, key); done {
			return out
		}
	}

	deadline := time.NewTimer(a.opts.Deadline)
	defer deadline.Stop()
	ticker := time.NewTicker(a.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return domain.Failed(zerr.Wrap(ctx.Err(), domain.ErrAwaitFailed.Error()))
		case <-deadline.C:
			a.logger.Warn("timed out waiting for data", "query", job.Query.String(), "key", key.String(),
				"deadline", a.opts.Deadline)
			return domain.TimedOut()
		case <-ticker.C:
			if out, done := a.poll(ctx, key); done {
				return out
			}
		}
	}
}

// poll checks the cache, then the job status. Backend errors are logged and retried
// until the deadline.
func (a *Awaiter) poll(ctx context.Context, key domain.CacheKey) (domain.Outcome, bool) {
	table, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache read failed while waiting", "key", key.String(), "error", err.Error())
		return domain.Outcome{}, false
	}
	if table != nil {
		return domain.Ready(table), true
	}

	st, err := a.status.Status(ctx, key.String())
	if err != nil {
		a.logger.Warn("job status unavailable", "key", key.String(), "error", err.Error())
		return domain.Outcome{}, false
	}
	if st != nil && st.State == domain.JobFailed {
		return domain.Failed(zerr.With(domain.ErrJobExecutionFailed, "error", st.Error)), true
	}
	return domain.Outcome{}, false
}
