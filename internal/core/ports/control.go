package ports

import (
	"context"
	"time"
)

//go:generate mockgen -source=control.go -destination=mocks/mock_control.go -package=mocks

// WorkerStatus is the state reported by a running worker process.
type WorkerStatus struct {
	PID          int
	Uptime       time.Duration
	LastActivity time.Time
	Active       int
	Succeeded    int
	Failed       int
}

// WorkerClient talks to a running worker over its control socket.
type WorkerClient interface {
	// Status returns the current worker status.
	Status(ctx context.Context) (*WorkerStatus, error)

	// Shutdown requests a graceful worker shutdown.
	Shutdown(ctx context.Context) error

	// Close releases client resources.
	Close() error
}
