package viz

import (
	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/engine/transform"
	"github.com/cdolfi/explorer/internal/ui/style"
)

const (
	// CompanyPage shows company affiliation charts.
	CompanyPage domain.PageName = "company"
	// CompanyActivityID identifies the company associated activity chart.
	CompanyActivityID domain.VizID = "company-associated-activity"
)

// Pie chart trace settings.
const (
	PieTextInfo      = "percent+label"
	PieHoverTemplate = "%{label} <br>Contribution: %{value}<br><extra></extra>"
)

// CompanyActivity is the share of contributions per email domain.
func CompanyActivity() Visualization {
	return Visualization{
		ID:    CompanyActivityID,
		Title: "Company Associated Activity",
		Query: domain.QueryCompanyActivity,
		Inputs: Inputs{
			Threshold: &ThresholdInput{
				Min:     domain.MinThreshold,
				Max:     domain.MaxThreshold,
				Default: domain.DefaultThreshold,
			},
			Exclusions: []ExclusionOption{
				{Value: domain.ExcludeGmail, Label: "Exclude gmail"},
				{Value: domain.ExcludeOther, Label: "Exclude Other"},
			},
			DateRange: true,
		},
		Render: renderCompanyActivity,
	}
}

func renderCompanyActivity(table *domain.Table, params domain.VizParams) (domain.Rendered, error) {
	const title = "Company Associated Activity"

	counts, err := transform.DomainActivity(table, params)
	if err != nil {
		return domain.Rendered{}, err
	}
	return Pie(title, counts), nil
}

// Pie renders a two-column label/count table as a pie chart.
func Pie(title string, counts *domain.Table) domain.Rendered {
	if counts.Empty() {
		return domain.Rendered{State: domain.ChartNoData, Chart: domain.NoDataChart(title)}
	}

	labels := make([]string, counts.Len())
	values := make([]int64, counts.Len())
	for i, row := range counts.Rows {
		labels[i], _ = row[0].(string)
		values[i], _ = row[1].(int64)
	}

	return domain.Rendered{
		State: domain.ChartReady,
		Chart: domain.ChartSpec{
			Kind:          domain.ChartPie,
			Title:         title,
			Labels:        labels,
			Values:        values,
			Colors:        style.ChartColors(len(labels)),
			TextInfo:      PieTextInfo,
			HoverTemplate: PieHoverTemplate,
		},
	}
}

// NewDefaultRegistry registers the built-in visualizations and pages.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(CompanyActivity()); err != nil {
		return nil, err
	}
	if err := r.RegisterPage(Page{
		Name:           CompanyPage,
		Title:          "Company Affiliation",
		Visualizations: []domain.VizID{CompanyActivityID},
	}); err != nil {
		return nil, err
	}
	return r, nil
}
