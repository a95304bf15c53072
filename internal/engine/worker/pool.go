// Package worker runs queued jobs: it resolves each job's executor, bounds its
// execution time, writes the result to the cache and records the job status.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
)

// Job results reported to metrics.
const (
	ResultSucceeded   = "succeeded"
	ResultFailed      = "failed"
	ResultInterrupted = "interrupted"
)

// ExecutorSource resolves the executor for a query identity.
type ExecutorSource interface {
	Executor(id domain.QueryID) (ports.QueryExecutor, error)
}

// Options configures a Pool.
type Options struct {
	// Concurrency is the number of jobs executed at once.
	Concurrency int
	// JobTimeout bounds a single job's execution.
	JobTimeout time.Duration
	// DequeueWait is how long one dequeue blocks before the loop checks for shutdown.
	DequeueWait time.Duration
}

// Pool consumes the job queue with bounded concurrency.
type Pool struct {
	queue     ports.JobQueue
	status    ports.JobStatusStore
	cache     ports.ResultCache
	executors ExecutorSource
	tracer    ports.Tracer
	metrics   ports.Metrics
	logger    ports.Logger
	opts      Options

	active       atomic.Int64
	succeeded    atomic.Int64
	failed       atomic.Int64
	lastActivity atomic.Int64
}

// NewPool creates a worker pool.
func NewPool(
	queue ports.JobQueue,
	status ports.JobStatusStore,
	cache ports.ResultCache,
	executors ExecutorSource,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
	opts Options,
) *Pool {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.DequeueWait <= 0 {
		opts.DequeueWait = time.Second
	}
	p := &Pool{
		queue:     queue,
		status:    status,
		cache:     cache,
		executors: executors,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
	}
	p.lastActivity.Store(time.Now().UnixNano())
	return p
}

// Run recovers unacknowledged deliveries, then executes jobs until ctx is canceled.
// Jobs still running at cancellation are left unacknowledged.
func (p *Pool) Run(ctx context.Context) error {
	recovered, err := p.queue.Recover(ctx)
	if err != nil {
		return err
	}
	if recovered > 0 {
		p.logger.Info("recovered unacknowledged jobs", "count", recovered)
	}
	p.logger.Info("worker started", "concurrency", p.opts.Concurrency)

	slots := make(chan struct{}, p.opts.Concurrency)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			return nil
		}

		delivery, err := p.queue.Dequeue(ctx, p.opts.DequeueWait)
		if err != nil {
			<-slots
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error(err)
			if !sleep(ctx, p.opts.DequeueWait) {
				return nil
			}
			continue
		}
		if delivery == nil {
			<-slots
			continue
		}

		wg.Go(func() {
			defer func() { <-slots }()
			p.handle(ctx, delivery)
		})
	}
}

// Status reports the pool's counters.
func (p *Pool) Status() ports.WorkerStatus {
	return ports.WorkerStatus{
		LastActivity: time.Unix(0, p.lastActivity.Load()),
		Active:       int(p.active.Load()),
		Succeeded:    int(p.succeeded.Load()),
		Failed:       int(p.failed.Load()),
	}
}

func (p *Pool) handle(ctx context.Context, delivery *ports.Delivery) {
	job := delivery.Job
	key := job.Key().String()
	query := job.Query.String()

	spanCtx, span := p.tracer.Start(ctx, "job.execute")
	defer span.End()
	span.SetAttribute("query", query)
	span.SetAttribute("repos", job.Repos.Len())
	span.SetAttribute("key", key)

	p.touch()
	p.active.Add(1)
	p.metrics.JobStarted(query)
	start := time.Now()
	defer p.active.Add(-1)

	p.setStatus(spanCtx, key, domain.JobRunning, "")

	err := p.execute(spanCtx, job)
	elapsed := time.Since(start)
	p.touch()

	if err != nil && ctx.Err() != nil {
		// Interrupted by shutdown: leave the delivery for recovery.
		p.metrics.JobFinished(query, ResultInterrupted, elapsed)
		p.logger.Warn("job interrupted by shutdown", "query", query, "key", key)
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetAttribute("state", string(domain.JobFailed))
		p.failed.Add(1)
		p.metrics.JobFinished(query, ResultFailed, elapsed)
		p.logger.Warn("job failed", "query", query, "key", key, "error", err.Error())
		p.setStatus(spanCtx, key, domain.JobFailed, err.Error())
	} else {
		span.SetAttribute("state", string(domain.JobSucceeded))
		p.succeeded.Add(1)
		p.metrics.JobFinished(query, ResultSucceeded, elapsed)
		p.logger.Info("job succeeded", "query", query, "key", key, "elapsed", elapsed.Round(time.Millisecond))
		p.setStatus(spanCtx, key, domain.JobSucceeded, "")
	}

	if err := p.status.Release(spanCtx, key); err != nil {
		p.logger.Error(err)
	}
	if err := delivery.Ack(spanCtx); err != nil {
		p.logger.Error(err)
	}
}

// execute runs the job's executor under the job timeout and caches its table.
func (p *Pool) execute(ctx context.Context, job domain.Job) error {
	exec, err := p.executors.Executor(job.Query)
	if err != nil {
		return err
	}

	table, err := p.run(ctx, exec, job)
	if err != nil {
		return err
	}
	if table == nil {
		table = domain.NewTable()
	}
	return p.cache.Put(ctx, job.Key(), table)
}

type runResult struct {
	table *domain.Table
	err   error
}

// run returns when the executor finishes or the timeout elapses, whichever is first.
// An executor that ignores its context is abandoned at the timeout.
func (p *Pool) run(ctx context.Context, exec ports.QueryExecutor, job domain.Job) (*domain.Table, error) {
	jobCtx, cancel := context.WithTimeout(ctx, p.opts.JobTimeout)
	defer cancel()

	done := make(chan runResult, 1)
	go func() {
		table, err := exec.Execute(jobCtx, job.Repos)
		done <- runResult{table: table, err: err}
	}()

	var res runResult
	select {
	case res = <-done:
	case <-jobCtx.Done():
		res = runResult{err: jobCtx.Err()}
	}

	if res.err == nil {
		return res.table, nil
	}
	if ctx.Err() == nil && errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
		return nil, zerr.With(domain.ErrJobTimedOut, "timeout", p.opts.JobTimeout.String())
	}
	return nil, zerr.Wrap(res.err, domain.ErrJobExecutionFailed.Error())
}

func (p *Pool) setStatus(ctx context.Context, key string, state domain.JobState, msg string) {
	st := domain.JobStatus{State: state, Error: msg, UpdatedAt: time.Now().UTC()}
	if err := p.status.SetStatus(ctx, key, st); err != nil {
		p.logger.Error(err)
	}
}

func (p *Pool) touch() {
	p.lastActivity.Store(time.Now().UnixNano())
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
