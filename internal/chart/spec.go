// Package chart builds declarative chart descriptions from launch records.
//
// A ChartSpec says what to draw, not how: the browser turns it into a Plotly
// figure (see Figure) and the export path renders it with go-chart
// (see Render).
package chart

// Kind identifies the chart type.
type Kind string

// Chart kinds.
const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Anchor places a legend or title in normalised plot coordinates.
type Anchor struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
}

// Axis describes one cartesian axis. A nil Range lets the renderer choose.
type Axis struct {
	Title string      `json:"title"`
	Range *[2]float64 `json:"range,omitempty"`
}

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Series is one group of scatter points.
type Series struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// ChartSpec is a rendering-independent chart description.
type ChartSpec struct {
	Kind        Kind              `json:"kind"`
	Title       string            `json:"title"`
	Slices      []Slice           `json:"slices,omitempty"`
	Series      []Series          `json:"series,omitempty"`
	ColorMap    map[string]string `json:"color_map,omitempty"`
	XAxis       *Axis             `json:"xaxis,omitempty"`
	YAxis       *Axis             `json:"yaxis,omitempty"`
	Legend      Anchor            `json:"legend"`
	TitleAnchor Anchor            `json:"title_anchor"`

	// Message is shown instead of data when the chart could not be built.
	Message string `json:"message,omitempty"`
}

// IsEmpty reports whether the chart has nothing to plot.
func (s ChartSpec) IsEmpty() bool {
	return len(s.Slices) == 0 && len(s.Series) == 0
}

// IsPlaceholder reports whether the spec stands in for a failed chart.
func (s ChartSpec) IsPlaceholder() bool {
	return s.Message != ""
}
