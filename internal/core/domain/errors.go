package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyRepoSet is returned when a job or request names no repositories.
	ErrEmptyRepoSet = zerr.New("repository set is empty")

	// ErrUnknownQuery is returned when no executor is registered for a query identity.
	ErrUnknownQuery = zerr.New("unknown query")

	// ErrQueryAlreadyRegistered is returned when a query identity is registered twice.
	ErrQueryAlreadyRegistered = zerr.New("query already registered")

	// ErrUnknownVisualization is returned when a requested visualization is not registered.
	ErrUnknownVisualization = zerr.New("unknown visualization")

	// ErrVisualizationAlreadyRegistered is returned when a visualization ID is registered twice.
	ErrVisualizationAlreadyRegistered = zerr.New("visualization already registered")

	// ErrUnknownPage is returned when a requested page is not registered.
	ErrUnknownPage = zerr.New("unknown page")

	// ErrPageAlreadyRegistered is returned when a page name is registered twice.
	ErrPageAlreadyRegistered = zerr.New("page already registered")

	// ErrInvalidThreshold is returned when a threshold is outside the accepted bounds.
	ErrInvalidThreshold = zerr.New("threshold out of range")

	// ErrInvalidExclusion is returned when an exclusion toggle is not recognized.
	ErrInvalidExclusion = zerr.New("unknown exclusion toggle")

	// ErrInvalidDateRange is returned when the start of a date range is after its end.
	ErrInvalidDateRange = zerr.New("start date is after end date")

	// ErrInvalidDate is returned when a date bound cannot be parsed.
	ErrInvalidDate = zerr.New("invalid date, expected YYYY-MM-DD")

	// ErrColumnNotFound is returned when a table lacks a required column.
	ErrColumnNotFound = zerr.New("column not found")

	// ErrColumnType is returned when a table value does not match its column kind.
	ErrColumnType = zerr.New("value does not match column kind")

	// ErrRowWidth is returned when a row has a different width than the table.
	ErrRowWidth = zerr.New("row width does not match column count")

	// ErrTimestampParse is returned when a timestamp value cannot be normalized.
	ErrTimestampParse = zerr.New("failed to parse timestamp")

	// ErrTableMarshalFailed is returned when a table cannot be encoded.
	ErrTableMarshalFailed = zerr.New("failed to marshal table")

	// ErrTableUnmarshalFailed is returned when a stored table cannot be decoded.
	ErrTableUnmarshalFailed = zerr.New("failed to unmarshal table")

	// ErrCacheReadFailed is returned when the result cache backend fails on read.
	ErrCacheReadFailed = zerr.New("failed to read result cache")

	// ErrCacheWriteFailed is returned when the result cache backend fails on write.
	ErrCacheWriteFailed = zerr.New("failed to write result cache")

	// ErrCacheOpenFailed is returned when the result cache backend cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open result cache")

	// ErrQueueEnqueueFailed is returned when a job cannot be enqueued.
	ErrQueueEnqueueFailed = zerr.New("failed to enqueue job")

	// ErrQueueDequeueFailed is returned when a job cannot be dequeued.
	ErrQueueDequeueFailed = zerr.New("failed to dequeue job")

	// ErrQueueAckFailed is returned when a delivered job cannot be acknowledged.
	ErrQueueAckFailed = zerr.New("failed to acknowledge job")

	// ErrJobStatusFailed is returned when the job status store fails.
	ErrJobStatusFailed = zerr.New("failed to access job status")

	// ErrJobEncodeFailed is returned when a job cannot be encoded for transport.
	ErrJobEncodeFailed = zerr.New("failed to encode job")

	// ErrJobDecodeFailed is returned when a job payload cannot be decoded.
	ErrJobDecodeFailed = zerr.New("failed to decode job")

	// ErrJobExecutionFailed is returned when a query executor fails.
	ErrJobExecutionFailed = zerr.New("job execution failed")

	// ErrJobTimedOut is returned when a job exceeds its execution bound.
	ErrJobTimedOut = zerr.New("job exceeded its time limit")

	// ErrWarehouseQueryFailed is returned when the warehouse query fails.
	ErrWarehouseQueryFailed = zerr.New("warehouse query failed")

	// ErrWarehouseConnectFailed is returned when the warehouse cannot be reached.
	ErrWarehouseConnectFailed = zerr.New("failed to connect to warehouse")

	// ErrGitHubRequestFailed is returned when a GitHub API request fails.
	ErrGitHubRequestFailed = zerr.New("github request failed")

	// ErrInvalidRepoName is returned when a repository identifier is not OWNER/NAME.
	ErrInvalidRepoName = zerr.New("invalid repository, expected OWNER/NAME")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is not acceptable.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrControlUnavailable is returned when the worker control socket cannot be reached.
	ErrControlUnavailable = zerr.New("worker control service unavailable")

	// ErrAwaitFailed is returned when a visualization's data could not be computed.
	ErrAwaitFailed = zerr.New("data computation failed")

	// ErrAwaitTimedOut is returned when a visualization's data did not arrive in time.
	ErrAwaitTimedOut = zerr.New("timed out waiting for data")
)
