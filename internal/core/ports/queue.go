package ports

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
)

//go:generate mockgen -source=queue.go -destination=mocks/mock_queue.go -package=mocks

// Delivery is a job handed to a worker.
// Ack must be called once the job reached a terminal state; an unacknowledged
// delivery may be handed out again.
type Delivery struct {
	Job domain.Job
	Ack func(ctx context.Context) error
}

// JobQueue transports jobs from dispatchers to workers.
type JobQueue interface {
	// Enqueue appends a job to the queue.
	Enqueue(ctx context.Context, job domain.Job) error

	// Dequeue waits up to wait for the next job.
	// Returns nil, nil if no job arrived in time.
	Dequeue(ctx context.Context, wait time.Duration) (*Delivery, error)

	// Recover re-queues deliveries a previous run of this worker left unacknowledged.
	// It returns the number of recovered jobs.
	Recover(ctx context.Context) (int, error)

	// Close releases queue resources.
	Close() error
}

// JobStatusStore tracks in-flight claims and the last known state of each job.
type JobStatusStore interface {
	// Claim marks key as in flight for ttl. It returns false if a claim already exists.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the in-flight claim for key.
	Release(ctx context.Context, key string) error

	// SetStatus records the state of the job for key.
	SetStatus(ctx context.Context, key string, status domain.JobStatus) error

	// Status returns the last recorded state for key.
	// Returns nil, nil if nothing was recorded.
	Status(ctx context.Context, key string) (*domain.JobStatus, error)
}

// Dispatcher submits jobs for asynchronous execution.
type Dispatcher interface {
	// Submit enqueues job unless one for the same key is already in flight.
	// It returns without waiting for the job to run.
	Submit(ctx context.Context, job domain.Job) (domain.JobHandle, error)
}
