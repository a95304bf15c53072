package domain

import "time"

// Job is a unit of asynchronous computation: a query identity applied to a repository set.
// It carries the query identity rather than a function so it can cross process boundaries;
// workers resolve the executor through their query registry.
type Job struct {
	Query       QueryID   `json:"query"`
	Repos       RepoSet   `json:"repos"`
	SubmittedAt time.Time `json:"submitted_at,omitzero"`
}

// NewJob creates a job for the given query and repositories.
func NewJob(query QueryID, repos RepoSet) Job {
	return Job{Query: query, Repos: repos}
}

// Key returns the cache key the job populates.
func (j Job) Key() CacheKey {
	return NewCacheKey(j.Query, j.Repos)
}

// JobHandle is returned by a dispatcher when a job is submitted.
type JobHandle struct {
	Key string `json:"key"`
	// Deduplicated is true when a job for the same key was already in flight
	// and no new work was enqueued.
	Deduplicated bool `json:"deduplicated"`
	// Cached is true when the cache entry was already present and nothing
	// was enqueued.
	Cached      bool      `json:"cached"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// JobState is the lifecycle state of a job.
type JobState string

const (
	// JobPending indicates the job is queued.
	JobPending JobState = "pending"
	// JobRunning indicates a worker is executing the job.
	JobRunning JobState = "running"
	// JobSucceeded indicates the result was written to the cache.
	JobSucceeded JobState = "succeeded"
	// JobFailed indicates the job failed and wrote nothing.
	JobFailed JobState = "failed"
)

// Terminal reports whether the state is final.
func (s JobState) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// JobStatus is the last recorded state of the job for a cache key.
type JobStatus struct {
	State     JobState  `json:"state"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
