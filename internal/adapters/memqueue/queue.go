// Package memqueue implements the job queue and job status store in process memory,
// for a server that runs its worker pool embedded.
package memqueue

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrQueueClosed is returned by Enqueue and Dequeue after Close.
var ErrQueueClosed = zerr.New("queue closed")

// Queue is a bounded FIFO channel of jobs. Acknowledgement is a no-op:
// jobs do not outlive the process.
type Queue struct {
	jobs chan domain.Job
	done chan struct{}
}

// NewQueue creates a queue buffering up to capacity jobs.
func NewQueue(capacity int) *Queue {
	return &Queue{
		jobs: make(chan domain.Job, capacity),
		done: make(chan struct{}),
	}
}

// Enqueue appends job, waiting for room if the buffer is full.
func (q *Queue) Enqueue(ctx context.Context, job domain.Job) error {
	select {
	case <-q.done:
		return zerr.Wrap(ErrQueueClosed, domain.ErrQueueEnqueueFailed.Error())
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	case <-q.done:
		return zerr.Wrap(ErrQueueClosed, domain.ErrQueueEnqueueFailed.Error())
	case <-ctx.Done():
		return zerr.Wrap(ctx.Err(), domain.ErrQueueEnqueueFailed.Error())
	}
}

// Dequeue waits up to wait for the next job.
func (q *Queue) Dequeue(ctx context.Context, wait time.Duration) (*ports.Delivery, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case job := <-q.jobs:
		return &ports.Delivery{Job: job, Ack: func(context.Context) error { return nil }}, nil
	case <-timer.C:
		return nil, nil
	case <-q.done:
		return nil, zerr.Wrap(ErrQueueClosed, domain.ErrQueueDequeueFailed.Error())
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Recover is a no-op: nothing survives a restart.
func (q *Queue) Recover(context.Context) (int, error) {
	return 0, nil
}

// Len returns the number of queued jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}

// Close stops accepting jobs and releases waiting consumers.
func (q *Queue) Close() error {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
	return nil
}
