// Package viz declares visualizations and the pages that show them, and renders a
// visualization once its query table is available.
package viz

import (
	"slices"
	"sync"

	"github.com/cdolfi/explorer/internal/core/domain"
	"go.trai.ch/zerr"
)

// ThresholdInput declares a bounded integer threshold control.
type ThresholdInput struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// ExclusionOption is one exclusion toggle offered to the user.
type ExclusionOption struct {
	Value domain.Exclusion `json:"value"`
	Label string           `json:"label"`
}

// Inputs declares the controls a visualization accepts.
type Inputs struct {
	Threshold  *ThresholdInput   `json:"threshold,omitempty"`
	Exclusions []ExclusionOption `json:"exclusions,omitempty"`
	DateRange  bool              `json:"date_range"`
}

// RenderFunc turns a non-empty query table into a chart.
type RenderFunc func(table *domain.Table, params domain.VizParams) (domain.Rendered, error)

// Visualization is a typed chart declaration.
type Visualization struct {
	ID     domain.VizID   `json:"id"`
	Title  string         `json:"title"`
	Query  domain.QueryID `json:"query"`
	Inputs Inputs         `json:"inputs"`
	Render RenderFunc     `json:"-"`
}

// Page groups the visualizations shown together.
type Page struct {
	Name           domain.PageName `json:"name"`
	Title          string          `json:"title"`
	Visualizations []domain.VizID  `json:"visualizations"`
}

// Registry holds visualizations and pages. Registrations are write-once.
type Registry struct {
	mu     sync.RWMutex
	vizzes map[domain.VizID]Visualization
	pages  map[domain.PageName]Page
	order  []domain.PageName
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		vizzes: make(map[domain.VizID]Visualization),
		pages:  make(map[domain.PageName]Page),
	}
}

// Register adds a visualization.
func (r *Registry) Register(v Visualization) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vizzes[v.ID]; ok {
		return zerr.With(domain.ErrVisualizationAlreadyRegistered, "viz", string(v.ID))
	}
	r.vizzes[v.ID] = v
	return nil
}

// RegisterPage adds a page. Every visualization it lists must already be registered.
func (r *Registry) RegisterPage(p Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[p.Name]; ok {
		return zerr.With(domain.ErrPageAlreadyRegistered, "page", string(p.Name))
	}
	for _, id := range p.Visualizations {
		if _, ok := r.vizzes[id]; !ok {
			return zerr.With(domain.ErrUnknownVisualization, "viz", string(id))
		}
	}
	p.Visualizations = slices.Clone(p.Visualizations)
	r.pages[p.Name] = p
	r.order = append(r.order, p.Name)
	return nil
}

// Visualization returns the visualization registered under id.
func (r *Registry) Visualization(id domain.VizID) (Visualization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vizzes[id]
	if !ok {
		return Visualization{}, zerr.With(domain.ErrUnknownVisualization, "viz", string(id))
	}
	return v, nil
}

// Page returns the page registered under name.
func (r *Registry) Page(name domain.PageName) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pages[name]
	if !ok {
		return Page{}, zerr.With(domain.ErrUnknownPage, "page", string(name))
	}
	return p, nil
}

// Pages returns every page in registration order.
func (r *Registry) Pages() []Page {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Page, len(r.order))
	for i, name := range r.order {
		out[i] = r.pages[name]
	}
	return out
}

// Queries returns the distinct query identities needed by a page, in page order.
func (r *Registry) Queries(name domain.PageName) ([]domain.QueryID, error) {
	p, err := r.Page(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.QueryID
	for _, id := range p.Visualizations {
		q := r.vizzes[id].Query
		if !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out, nil
}

// PageView is a page with its visualization declarations expanded.
type PageView struct {
	Name           domain.PageName `json:"name"`
	Title          string          `json:"title"`
	Visualizations []Visualization `json:"visualizations"`
}

// Catalog returns every page in registration order with its visualizations.
func (r *Registry) Catalog() []PageView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PageView, 0, len(r.order))
	for _, name := range r.order {
		p := r.pages[name]
		view := PageView{Name: p.Name, Title: p.Title, Visualizations: make([]Visualization, 0, len(p.Visualizations))}
		for _, id := range p.Visualizations {
			view.Visualizations = append(view.Visualizations, r.vizzes[id])
		}
		out = append(out, view)
	}
	return out
}
