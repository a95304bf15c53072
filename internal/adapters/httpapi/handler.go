// Package httpapi exposes pages, prefetch and visualizations as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"github.com/cdolfi/explorer/internal/engine/viz"
	"go.trai.ch/zerr"
)

// Service is the application behavior behind the API.
type Service interface {
	Registry() *viz.Registry
	Render(ctx context.Context, id domain.VizID, repos domain.RepoSet, params domain.VizParams) (domain.Rendered, error)
	DateBounds(ctx context.Context, id domain.VizID, repos domain.RepoSet) (viz.Bounds, error)
	Prefetch(ctx context.Context, page domain.PageName, repos domain.RepoSet) ([]domain.JobHandle, error)
}

// Query parameter names.
const (
	ParamRepo      = "repo"
	ParamThreshold = "threshold"
	ParamExclude   = "exclude"
	ParamStart     = "start"
	ParamEnd       = "end"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// PrefetchRequest is the body of POST /api/v1/prefetch.
type PrefetchRequest struct {
	Page  domain.PageName `json:"page"`
	Repos []string        `json:"repos"`
}

// PrefetchResponse lists the submitted jobs.
type PrefetchResponse struct {
	Jobs []domain.JobHandle `json:"jobs"`
}

type handler struct {
	svc    Service
	logger ports.Logger
}

// NewHandler builds the API routes. metrics serves /metrics and may be nil.
func NewHandler(svc Service, metrics http.Handler, logger ports.Logger) http.Handler {
	h := &handler{svc: svc, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.Handle("GET /api/v1/pages", h.boundary(h.pages))
	mux.Handle("POST /api/v1/prefetch", h.boundary(h.prefetch))
	mux.Handle("GET /api/v1/visualizations/{id}", h.boundary(h.visualization))
	mux.Handle("GET /api/v1/visualizations/{id}/date-bounds", h.boundary(h.dateBounds))
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	return mux
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) pages(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{"pages": h.svc.Registry().Catalog()})
	return nil
}

func (h *handler) prefetch(w http.ResponseWriter, r *http.Request) error {
	var req PrefetchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return badRequest(zerr.Wrap(err, "invalid request body"))
	}

	if _, err := h.svc.Registry().Page(req.Page); err != nil {
		return notFound(err)
	}
	repos := domain.NewRepoSet(req.Repos...)
	if repos.Empty() {
		return badRequest(domain.ErrEmptyRepoSet)
	}

	handles, err := h.svc.Prefetch(r.Context(), req.Page, repos)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusAccepted, PrefetchResponse{Jobs: handles})
	return nil
}

func (h *handler) visualization(w http.ResponseWriter, r *http.Request) error {
	id, err := h.lookup(r)
	if err != nil {
		return err
	}
	repos, err := parseRepos(r)
	if err != nil {
		return err
	}
	params, err := parseParams(r)
	if err != nil {
		return err
	}

	rendered, err := h.svc.Render(r.Context(), id, repos, params)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rendered)
	return nil
}

func (h *handler) dateBounds(w http.ResponseWriter, r *http.Request) error {
	id, err := h.lookup(r)
	if err != nil {
		return err
	}
	repos, err := parseRepos(r)
	if err != nil {
		return err
	}

	bounds, err := h.svc.DateBounds(r.Context(), id, repos)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, bounds)
	return nil
}

func (h *handler) lookup(r *http.Request) (domain.VizID, error) {
	id := domain.VizID(r.PathValue("id"))
	if _, err := h.svc.Registry().Visualization(id); err != nil {
		return "", notFound(err)
	}
	return id, nil
}

// parseRepos accepts repeated repo parameters and comma-separated lists.
func parseRepos(r *http.Request) (domain.RepoSet, error) {
	var ids []string
	for _, v := range r.URL.Query()[ParamRepo] {
		ids = append(ids, strings.Split(v, ",")...)
	}
	repos := domain.NewRepoSet(ids...)
	if repos.Empty() {
		return domain.RepoSet{}, badRequest(domain.ErrEmptyRepoSet)
	}
	return repos, nil
}

func parseParams(r *http.Request) (domain.VizParams, error) {
	q := r.URL.Query()
	params := domain.DefaultVizParams()

	if raw := q.Get(ParamThreshold); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.VizParams{}, badRequest(zerr.With(domain.ErrInvalidThreshold, "value", raw))
		}
		params.Threshold = n
	}

	for _, v := range q[ParamExclude] {
		for e := range strings.SplitSeq(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				params.Exclusions = append(params.Exclusions, domain.Exclusion(e))
			}
		}
	}

	start, err := domain.ParseDate(q.Get(ParamStart))
	if err != nil {
		return domain.VizParams{}, badRequest(err)
	}
	end, err := domain.ParseDate(q.Get(ParamEnd))
	if err != nil {
		return domain.VizParams{}, badRequest(err)
	}
	params.Dates = domain.DateRange{Start: start, End: end}

	if err := params.Validate(); err != nil {
		return domain.VizParams{}, badRequest(err)
	}
	return params, nil
}
