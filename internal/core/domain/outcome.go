package domain

import "time"

// AwaitState is the result of waiting for a cache entry.
type AwaitState string

const (
	// AwaitReady means the table is available.
	AwaitReady AwaitState = "ready"
	// AwaitTimedOut means the deadline passed before the table arrived.
	AwaitTimedOut AwaitState = "timed_out"
	// AwaitFailed means the job failed or the wait was abandoned.
	AwaitFailed AwaitState = "failed"
)

// Outcome is the tri-state result of awaiting a job's cache entry.
type Outcome struct {
	State AwaitState
	Table *Table
	Err   error
}

// Ready builds a ready outcome for the given table.
func Ready(t *Table) Outcome {
	return Outcome{State: AwaitReady, Table: t}
}

// TimedOut builds a timed-out outcome.
func TimedOut() Outcome {
	return Outcome{State: AwaitTimedOut, Err: ErrAwaitTimedOut}
}

// Failed builds a failed outcome carrying its cause.
func Failed(err error) Outcome {
	return Outcome{State: AwaitFailed, Err: err}
}

// DateBounds are the selectable date limits for a visualization's data.
type DateBounds struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}
