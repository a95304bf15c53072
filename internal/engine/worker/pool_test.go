package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/adapters/memcache"
	"github.com/cdolfi/explorer/internal/adapters/memqueue"
	"github.com/cdolfi/explorer/internal/adapters/telemetry"
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/core/ports/mocks"
	"github.com/cdolfi/explorer/internal/engine/query"
	"github.com/cdolfi/explorer/internal/engine/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// execFunc adapts a function to ports.QueryExecutor.
type execFunc func(ctx context.Context, repos domain.RepoSet) (*domain.Table, error)

func (f execFunc) Execute(ctx context.Context, repos domain.RepoSet) (*domain.Table, error) {
	return f(ctx, repos)
}

type harness struct {
	queue  *memqueue.Queue
	status *memqueue.StatusStore
	cache  *memcache.Cache
	pool   *worker.Pool
}

func newHarness(t *testing.T, exec ports.QueryExecutor, opts worker.Options) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().JobStarted(gomock.Any()).AnyTimes()
	m.EXPECT().JobFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	registry := query.NewRegistry()
	require.NoError(t, registry.Register(domain.QueryCompanyActivity, exec))

	h := &harness{
		queue:  memqueue.NewQueue(16),
		status: memqueue.NewStatusStore(time.Hour),
		cache:  memcache.New(16, time.Hour),
	}
	if opts.DequeueWait == 0 {
		opts.DequeueWait = 10 * time.Millisecond
	}
	h.pool = worker.NewPool(h.queue, h.status, h.cache, registry,
		telemetry.NewNoOpTracer(), m, log, opts)
	return h
}

func (h *harness) start(t *testing.T) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		done <- h.pool.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return cancel, done
}

func (h *harness) submit(t *testing.T, job domain.Job) string {
	t.Helper()
	key := job.Key().String()
	ok, err := h.status.Claim(t.Context(), key, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, h.queue.Enqueue(t.Context(), job))
	return key
}

func (h *harness) waitState(t *testing.T, key string, state domain.JobState) *domain.JobStatus {
	t.Helper()
	var got *domain.JobStatus
	require.Eventually(t, func() bool {
		st, err := h.status.Status(t.Context(), key)
		if err != nil || st == nil || st.State != state {
			return false
		}
		got = st
		return true
	}, 5*time.Second, 5*time.Millisecond)
	return got
}

func activityTable(t *testing.T) *domain.Table {
	t.Helper()
	tbl := domain.NewTable(domain.ActivityColumns()...)
	require.NoError(t, tbl.Append(1, "abc", "2023-01-01", "a@redhat.com , b@gmail.com"))
	return tbl
}

func TestPool_SucceededJobIsCached(t *testing.T) {
	tbl := activityTable(t)
	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		return tbl, nil
	}), worker.Options{Concurrency: 2, JobTimeout: time.Minute})
	h.start(t)

	job := domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1"))
	key := h.submit(t, job)
	h.waitState(t, key, domain.JobSucceeded)

	got, err := h.cache.Get(t.Context(), job.Key())
	require.NoError(t, err)
	assert.Equal(t, tbl, got)

	claimed, err := h.status.Claim(t.Context(), key, time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed, "claim should be released after the job finishes")

	st := h.pool.Status()
	assert.Equal(t, 1, st.Succeeded)
	assert.Equal(t, 0, st.Failed)
	assert.Equal(t, 0, st.Active)
}

func TestPool_NilTableIsCachedAsEmpty(t *testing.T) {
	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		return nil, nil
	}), worker.Options{Concurrency: 1, JobTimeout: time.Minute})
	h.start(t)

	job := domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1"))
	h.waitState(t, h.submit(t, job), domain.JobSucceeded)

	got, err := h.cache.Get(t.Context(), job.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Empty())
}

func TestPool_FailedJobIsNotCached(t *testing.T) {
	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		return nil, errors.New("warehouse unreachable")
	}), worker.Options{Concurrency: 1, JobTimeout: time.Minute})
	h.start(t)

	job := domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1"))
	st := h.waitState(t, h.submit(t, job), domain.JobFailed)
	assert.Contains(t, st.Error, "warehouse unreachable")

	got, err := h.cache.Get(t.Context(), job.Key())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, h.pool.Status().Failed)
}

func TestPool_UnknownQueryFails(t *testing.T) {
	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		return domain.NewTable(), nil
	}), worker.Options{Concurrency: 1, JobTimeout: time.Minute})
	h.start(t)

	st := h.waitState(t, h.submit(t, domain.NewJob("unregistered", domain.NewRepoSet("1"))), domain.JobFailed)
	assert.Contains(t, st.Error, domain.ErrUnknownQuery.Error())
}

func TestPool_JobTimeoutAbandonsExecutor(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		<-release // ignores its context
		return domain.NewTable(), nil
	}), worker.Options{Concurrency: 1, JobTimeout: 20 * time.Millisecond})
	h.start(t)

	job := domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1"))
	st := h.waitState(t, h.submit(t, job), domain.JobFailed)
	assert.Contains(t, st.Error, domain.ErrJobTimedOut.Error())

	got, err := h.cache.Get(t.Context(), job.Key())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPool_ConcurrencyIsBounded(t *testing.T) {
	var running, peak atomic.Int64
	release := make(chan struct{})

	h := newHarness(t, execFunc(func(context.Context, domain.RepoSet) (*domain.Table, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return domain.NewTable(), nil
	}), worker.Options{Concurrency: 2, JobTimeout: time.Minute})
	h.start(t)

	keys := []string{
		h.submit(t, domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1"))),
		h.submit(t, domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("2"))),
		h.submit(t, domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("3"))),
	}

	require.Eventually(t, func() bool { return running.Load() == 2 }, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, h.pool.Status().Active)
	assert.Equal(t, 1, h.queue.Len())

	close(release)
	for _, key := range keys {
		h.waitState(t, key, domain.JobSucceeded)
	}
	assert.Equal(t, int64(2), peak.Load())
}

func TestPool_ShutdownLeavesJobRunning(t *testing.T) {
	started := make(chan struct{})
	h := newHarness(t, execFunc(func(ctx context.Context, _ domain.RepoSet) (*domain.Table, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}), worker.Options{Concurrency: 1, JobTimeout: time.Minute})
	cancel, done := h.start(t)

	key := h.submit(t, domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1")))
	<-started
	h.waitState(t, key, domain.JobRunning)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop")
	}

	st, err := h.status.Status(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, domain.JobRunning, st.State)
	assert.Equal(t, 0, h.pool.Status().Failed)

	claimed, err := h.status.Claim(context.Background(), key, time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed, "claim should be held until it expires")
}

func TestPool_RecoverErrorStopsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockJobQueue(ctrl)
	boom := errors.New("redis down")
	queue.EXPECT().Recover(gomock.Any()).Return(0, boom)

	pool := worker.NewPool(queue, mocks.NewMockJobStatusStore(ctrl), mocks.NewMockResultCache(ctrl),
		query.NewRegistry(), telemetry.NewNoOpTracer(), mocks.NewMockMetrics(ctrl), mocks.NewMockLogger(ctrl),
		worker.Options{Concurrency: 1, JobTimeout: time.Minute})

	require.ErrorIs(t, pool.Run(t.Context()), boom)
}

func TestPool_FailedJobSpan(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().JobStarted(gomock.Any()).AnyTimes()
	m.EXPECT().JobFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	job := domain.NewJob(domain.QueryCompanyActivity, domain.NewRepoSet("1", "2"))
	key := job.Key().String()

	span := mocks.NewMockSpan(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	ended := make(chan struct{})
	tracer.EXPECT().Start(gomock.Any(), "job.execute").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span },
	)
	span.EXPECT().SetAttribute("query", domain.QueryCompanyActivity.String())
	span.EXPECT().SetAttribute("repos", 2)
	span.EXPECT().SetAttribute("key", key)
	span.EXPECT().RecordError(gomock.Any())
	span.EXPECT().SetAttribute("state", string(domain.JobFailed))
	span.EXPECT().End().Do(func() { close(ended) })

	registry := query.NewRegistry()
	require.NoError(t, registry.Register(domain.QueryCompanyActivity, execFunc(
		func(context.Context, domain.RepoSet) (*domain.Table, error) { return nil, errors.New("boom") },
	)))

	queue := memqueue.NewQueue(4)
	status := memqueue.NewStatusStore(time.Hour)
	pool := worker.NewPool(queue, status, memcache.New(4, time.Hour), registry, tracer, m, log,
		worker.Options{Concurrency: 1, JobTimeout: time.Minute, DequeueWait: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()

	require.NoError(t, queue.Enqueue(t.Context(), job))
	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("span was not ended")
	}

	cancel()
	require.NoError(t, <-done)
}
