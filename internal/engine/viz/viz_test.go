package viz_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports/mocks"
	"github.com/cdolfi/explorer/internal/engine/viz"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type awaitFunc func(ctx context.Context, job domain.Job) domain.Outcome

func (f awaitFunc) Await(ctx context.Context, job domain.Job) domain.Outcome { return f(ctx, job) }

func returning(out domain.Outcome) awaitFunc {
	return func(context.Context, domain.Job) domain.Outcome { return out }
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(v))
	return buf.Bytes()
}

func activity(t *testing.T, domains map[string]int) *domain.Table {
	t.Helper()
	tbl := domain.NewTable(domain.ActivityColumns()...)
	day := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	for d, n := range domains {
		for range n {
			require.NoError(t, tbl.Append(1, "sha", day, "dev@"+d))
			day = day.Add(time.Hour)
		}
	}
	return tbl
}

func newRenderer(t *testing.T, registry *viz.Registry, a viz.Awaiter) *viz.Renderer {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return viz.NewRenderer(registry, a, log)
}

func defaultRegistry(t *testing.T) *viz.Registry {
	t.Helper()
	r, err := viz.NewDefaultRegistry()
	require.NoError(t, err)
	return r
}

var repos = domain.NewRepoSet("25430", "25445")

func TestRender_Golden(t *testing.T) {
	table := activity(t, map[string]int{"redhat.com": 15, "ibm.com": 8, "gmail.com": 3})

	tests := []struct {
		name    string
		outcome domain.Outcome
		state   domain.ChartState
	}{
		{name: "company_ready", outcome: domain.Ready(table), state: domain.ChartReady},
		{name: "company_no_data", outcome: domain.Ready(domain.NewTable()), state: domain.ChartNoData},
		{name: "company_timed_out", outcome: domain.TimedOut(), state: domain.ChartTimedOut},
		{name: "company_failed", outcome: domain.Failed(errors.New("boom")), state: domain.ChartFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, defaultRegistry(t), returning(tt.outcome))

			got, err := r.Render(t.Context(), viz.CompanyActivityID, repos, domain.DefaultVizParams())
			require.NoError(t, err)
			assert.Equal(t, tt.state, got.State)

			g := goldie.New(t)
			g.Assert(t, tt.name, marshal(t, got))
		})
	}
}

func TestRender_FiltersToNoData(t *testing.T) {
	table := activity(t, map[string]int{"gmail.com": 30})
	r := newRenderer(t, defaultRegistry(t), returning(domain.Ready(table)))

	params := domain.DefaultVizParams()
	params.Exclusions = []domain.Exclusion{domain.ExcludeGmail}

	got, err := r.Render(t.Context(), viz.CompanyActivityID, repos, params)
	require.NoError(t, err)
	assert.Equal(t, domain.ChartNoData, got.State)
	assert.Equal(t, domain.NoDataMessage, got.Chart.Message)
}

func TestRender_SubmitsVisualizationQuery(t *testing.T) {
	var seen domain.Job
	r := newRenderer(t, defaultRegistry(t), awaitFunc(func(_ context.Context, job domain.Job) domain.Outcome {
		seen = job
		return domain.TimedOut()
	}))

	_, err := r.Render(t.Context(), viz.CompanyActivityID, repos, domain.DefaultVizParams())
	require.NoError(t, err)
	assert.Equal(t, domain.QueryCompanyActivity, seen.Query)
	assert.True(t, repos.Equal(seen.Repos))
}

func TestRender_Errors(t *testing.T) {
	never := func(t *testing.T) awaitFunc {
		return func(context.Context, domain.Job) domain.Outcome {
			t.Fatal("await should not be called")
			return domain.Outcome{}
		}
	}

	t.Run("unknown visualization", func(t *testing.T) {
		r := newRenderer(t, defaultRegistry(t), never(t))
		_, err := r.Render(t.Context(), "missing", repos, domain.DefaultVizParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrUnknownVisualization.Error())
	})

	t.Run("invalid params", func(t *testing.T) {
		r := newRenderer(t, defaultRegistry(t), never(t))
		_, err := r.Render(t.Context(), viz.CompanyActivityID, repos, domain.VizParams{Threshold: 500})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidThreshold.Error())
	})

	t.Run("empty repos", func(t *testing.T) {
		r := newRenderer(t, defaultRegistry(t), never(t))
		_, err := r.Render(t.Context(), viz.CompanyActivityID, domain.NewRepoSet(), domain.DefaultVizParams())
		require.ErrorIs(t, err, domain.ErrEmptyRepoSet)
	})

	t.Run("transform failure", func(t *testing.T) {
		bad := domain.NewTable(domain.Column{Name: "unexpected", Kind: domain.KindString})
		require.NoError(t, bad.Append("x"))
		r := newRenderer(t, defaultRegistry(t), returning(domain.Ready(bad)))

		_, err := r.Render(t.Context(), viz.CompanyActivityID, repos, domain.DefaultVizParams())
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrColumnNotFound.Error())
	})
}

func TestDateBounds(t *testing.T) {
	table := activity(t, map[string]int{"redhat.com": 3})
	r := newRenderer(t, defaultRegistry(t), returning(domain.Ready(table)))
	r.SetNow(func() time.Time { return time.Date(2024, 5, 6, 17, 30, 0, 0, time.FixedZone("x", -7*3600)) })

	got, err := r.DateBounds(t.Context(), viz.CompanyActivityID, repos)
	require.NoError(t, err)
	assert.Equal(t, domain.ChartReady, got.State)
	require.NotNil(t, got.DateBounds)
	assert.Equal(t, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), got.Min)
	assert.Equal(t, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), got.Max)

	assert.JSONEq(t,
		`{"state":"ready","min":"2022-03-01T00:00:00Z","max":"2024-05-07T00:00:00Z"}`,
		string(marshal(t, got)))
}

func TestDateBounds_NotReady(t *testing.T) {
	tests := []struct {
		name    string
		outcome domain.Outcome
		state   domain.ChartState
	}{
		{name: "empty", outcome: domain.Ready(domain.NewTable()), state: domain.ChartNoData},
		{name: "timed out", outcome: domain.TimedOut(), state: domain.ChartTimedOut},
		{name: "failed", outcome: domain.Failed(errors.New("boom")), state: domain.ChartFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, defaultRegistry(t), returning(tt.outcome))
			got, err := r.DateBounds(t.Context(), viz.CompanyActivityID, repos)
			require.NoError(t, err)
			assert.Equal(t, tt.state, got.State)
			assert.Nil(t, got.DateBounds)
			assert.JSONEq(t, `{"state":"`+string(tt.state)+`"}`, string(marshal(t, got)))
		})
	}
}

func TestRegistry(t *testing.T) {
	r := defaultRegistry(t)

	pages := r.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, viz.CompanyPage, pages[0].Name)

	queries, err := r.Queries(viz.CompanyPage)
	require.NoError(t, err)
	assert.Equal(t, []domain.QueryID{domain.QueryCompanyActivity}, queries)

	v, err := r.Visualization(viz.CompanyActivityID)
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "company_declaration", marshal(t, v))
}

func TestRegistry_Errors(t *testing.T) {
	r := viz.NewRegistry()
	require.NoError(t, r.Register(viz.CompanyActivity()))

	err := r.Register(viz.CompanyActivity())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrVisualizationAlreadyRegistered.Error())

	page := viz.Page{Name: viz.CompanyPage, Visualizations: []domain.VizID{viz.CompanyActivityID}}
	require.NoError(t, r.RegisterPage(page))
	err = r.RegisterPage(page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPageAlreadyRegistered.Error())
	assert.NotContains(t, err.Error(), domain.ErrVisualizationAlreadyRegistered.Error())

	err = r.RegisterPage(viz.Page{Name: "p", Visualizations: []domain.VizID{"missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnknownVisualization.Error())

	_, err = r.Page("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnknownPage.Error())

	_, err = r.Queries("missing")
	require.Error(t, err)
}

func TestPie_CyclesPalette(t *testing.T) {
	counts := domain.NewTable(
		domain.Column{Name: "domains", Kind: domain.KindString},
		domain.Column{Name: "occurrences", Kind: domain.KindInt},
	)
	for _, d := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, counts.Append(d, 1))
	}

	got := viz.Pie("t", counts)
	require.Len(t, got.Chart.Colors, 7)
	assert.Equal(t, got.Chart.Colors[0], got.Chart.Colors[6])
}

func TestRegistry_Catalog(t *testing.T) {
	catalog := defaultRegistry(t).Catalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "Company Affiliation", catalog[0].Title)
	require.Len(t, catalog[0].Visualizations, 1)
	assert.Equal(t, viz.CompanyActivityID, catalog[0].Visualizations[0].ID)
}
