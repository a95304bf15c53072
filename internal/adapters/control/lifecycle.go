package control

import (
	"sync"
	"time"
)

// Lifecycle tracks worker uptime and signals shutdown.
type Lifecycle struct {
	startTime    time.Time
	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewLifecycle creates a lifecycle starting now.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		startTime:    time.Now(),
		shutdownChan: make(chan struct{}),
	}
}

// Uptime returns how long the worker has been running.
func (l *Lifecycle) Uptime() time.Duration {
	return time.Since(l.startTime)
}

// ShutdownChan returns a channel that closes when shutdown is requested.
func (l *Lifecycle) ShutdownChan() <-chan struct{} {
	return l.shutdownChan
}

// Shutdown requests shutdown. It is idempotent.
func (l *Lifecycle) Shutdown() {
	l.shutdownOnce.Do(func() {
		close(l.shutdownChan)
	})
}
