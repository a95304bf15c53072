package ports

import "time"

// Metrics records operational counters.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// JobStarted marks a job as active.
	JobStarted(query string)
	// JobFinished records a finished job and its result ("succeeded" or "failed").
	JobFinished(query, result string, elapsed time.Duration)
	// CacheLookup records a cache hit or miss.
	CacheLookup(hit bool)
	// Dispatched records a submission result ("enqueued" or "deduplicated").
	Dispatched(result string)
}
