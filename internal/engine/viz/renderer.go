package viz

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/transform"
)

// Awaiter resolves a job to its table.
type Awaiter interface {
	Await(ctx context.Context, job domain.Job) domain.Outcome
}

// Bounds is the date picker range of a visualization. It is nil unless State is ready.
type Bounds struct {
	State domain.ChartState `json:"state"`
	*domain.DateBounds
}

// Renderer awaits a visualization's data and draws it.
type Renderer struct {
	registry *Registry
	awaiter  Awaiter
	logger   ports.Logger
	now      func() time.Time
}

// NewRenderer creates a renderer.
func NewRenderer(registry *Registry, awaiter Awaiter, logger ports.Logger) *Renderer {
	return &Renderer{registry: registry, awaiter: awaiter, logger: logger, now: time.Now}
}

// Registry returns the registry the renderer draws from.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render draws visualization id for repos. A timed-out or failed wait yields a
// placeholder chart, not an error. Errors are returned for unknown visualizations,
// invalid parameters and transform failures.
func (r *Renderer) Render(
	ctx context.Context, id domain.VizID, repos domain.RepoSet, params domain.VizParams,
) (domain.Rendered, error) {
	v, err := r.registry.Visualization(id)
	if err != nil {
		return domain.Rendered{}, err
	}
	if err := params.Validate(); err != nil {
		return domain.Rendered{}, err
	}
	if repos.Empty() {
		return domain.Rendered{}, domain.ErrEmptyRepoSet
	}

	out := r.awaiter.Await(ctx, domain.NewJob(v.Query, repos))
	switch out.State {
	case domain.AwaitTimedOut:
		return domain.Rendered{State: domain.ChartTimedOut, Chart: domain.TimedOutChart(v.Title)}, nil
	case domain.AwaitFailed:
		r.logger.Warn("visualization data unavailable", "viz", string(id), "error", errText(out.Err))
		return domain.Rendered{State: domain.ChartFailed, Chart: domain.FailedChart(v.Title)}, nil
	}

	if out.Table.Empty() {
		return domain.Rendered{State: domain.ChartNoData, Chart: domain.NoDataChart(v.Title)}, nil
	}
	return v.Render(out.Table, params)
}

// DateBounds returns the earliest activity timestamp of a visualization's data and
// today's date, in UTC.
func (r *Renderer) DateBounds(ctx context.Context, id domain.VizID, repos domain.RepoSet) (Bounds, error) {
	v, err := r.registry.Visualization(id)
	if err != nil {
		return Bounds{}, err
	}
	if repos.Empty() {
		return Bounds{}, domain.ErrEmptyRepoSet
	}

	out := r.awaiter.Await(ctx, domain.NewJob(v.Query, repos))
	switch out.State {
	case domain.AwaitTimedOut:
		return Bounds{State: domain.ChartTimedOut}, nil
	case domain.AwaitFailed:
		r.logger.Warn("date bounds unavailable", "viz", string(id), "error", errText(out.Err))
		return Bounds{State: domain.ChartFailed}, nil
	}

	if out.Table.Empty() {
		return Bounds{State: domain.ChartNoData}, nil
	}

	earliest, ok, err := transform.Earliest(out.Table)
	if err != nil {
		return Bounds{}, err
	}
	if !ok {
		return Bounds{State: domain.ChartNoData}, nil
	}

	y, m, d := r.now().UTC().Date()
	return Bounds{
		State: domain.ChartReady,
		DateBounds: &domain.DateBounds{
			Min: earliest,
			Max: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		},
	}, nil
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
