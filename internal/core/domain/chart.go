package domain

// VizID identifies a registered visualization.
type VizID string

// PageName identifies a dashboard page.
type PageName string

// ChartKind is the kind of chart a front end should draw.
type ChartKind string

const (
	// ChartPie is a pie chart of labels and values.
	ChartPie ChartKind = "pie"
	// ChartPlaceholder is a message shown in place of a chart.
	ChartPlaceholder ChartKind = "placeholder"
)

// ChartState tells a front end why a chart looks the way it does.
type ChartState string

const (
	// ChartReady carries data.
	ChartReady ChartState = "ready"
	// ChartNoData means the data was computed but nothing remained to draw.
	ChartNoData ChartState = "no_data"
	// ChartTimedOut means the data was not computed in time.
	ChartTimedOut ChartState = "timed_out"
	// ChartFailed means the data could not be computed.
	ChartFailed ChartState = "failed"
)

// ChartSpec is an opaque chart description consumed by the presentation layer.
type ChartSpec struct {
	Kind          ChartKind `json:"kind"`
	Title         string    `json:"title"`
	Labels        []string  `json:"labels,omitempty"`
	Values        []int64   `json:"values,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	TextInfo      string    `json:"textinfo,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Message       string    `json:"message,omitempty"`
}

// Placeholder messages.
const (
	NoDataMessage   = "No data available for the selected repositories and filters."
	TimedOutMessage = "Data is still being computed. Try again shortly."
	FailedMessage   = "Data could not be computed."
)

// NoDataChart is drawn when a table is empty.
func NoDataChart(title string) ChartSpec {
	return ChartSpec{Kind: ChartPlaceholder, Title: title, Message: NoDataMessage}
}

// TimedOutChart is drawn when data did not arrive before the deadline.
func TimedOutChart(title string) ChartSpec {
	return ChartSpec{Kind: ChartPlaceholder, Title: title, Message: TimedOutMessage}
}

// FailedChart is drawn when the job computing the data failed.
func FailedChart(title string) ChartSpec {
	return ChartSpec{Kind: ChartPlaceholder, Title: title, Message: FailedMessage}
}

// Rendered is a chart along with the state that produced it.
type Rendered struct {
	State ChartState `json:"state"`
	Chart ChartSpec  `json:"chart"`
}
