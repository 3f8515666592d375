package chart

// Figure is a Plotly.js figure: the JSON handed to Plotly.react in the page.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace.
type Trace struct {
	Type   string    `json:"type"`
	Name   string    `json:"name,omitempty"`
	Mode   string    `json:"mode,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	X      []float64 `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Sort   *bool     `json:"sort,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Marker carries per-slice colours for pies.
type Marker struct {
	Colors []string `json:"colors,omitempty"`
}

// Layout is the subset of the Plotly layout the dashboard sets.
type Layout struct {
	Title       Title        `json:"title"`
	Legend      Anchor       `json:"legend"`
	XAxis       *LayoutAxis  `json:"xaxis,omitempty"`
	YAxis       *LayoutAxis  `json:"yaxis,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Title is a Plotly layout title.
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
}

// LayoutAxis is a Plotly cartesian axis.
type LayoutAxis struct {
	Title   Text      `json:"title"`
	Range   []float64 `json:"range,omitempty"`
	Visible *bool     `json:"visible,omitempty"`
}

// Text wraps a plain text label.
type Text struct {
	Text string `json:"text"`
}

// Annotation is free text placed on the plot.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	ShowArrow bool    `json:"showarrow"`
}

// Figure converts the spec into a Plotly figure. Data is never nil so an
// empty chart serialises as an empty trace list.
func (s ChartSpec) Figure() Figure {
	fig := Figure{
		Data: []Trace{},
		Layout: Layout{
			Title: Title{
				Text:    s.Title,
				X:       s.TitleAnchor.X,
				Y:       s.TitleAnchor.Y,
				XAnchor: s.TitleAnchor.XAnchor,
				YAnchor: s.TitleAnchor.YAnchor,
			},
			Legend: s.Legend,
			XAxis:  layoutAxis(s.XAxis),
			YAxis:  layoutAxis(s.YAxis),
		},
	}

	if s.IsPlaceholder() {
		hidden := false
		fig.Layout.XAxis = &LayoutAxis{Visible: &hidden}
		fig.Layout.YAxis = &LayoutAxis{Visible: &hidden}
		fig.Layout.Annotations = []Annotation{{
			Text: s.Message, X: 0.5, Y: 0.5, XRef: "paper", YRef: "paper",
		}}
		return fig
	}

	switch s.Kind {
	case KindPie:
		if len(s.Slices) == 0 {
			return fig
		}
		noSort := false
		trace := Trace{Type: "pie", Sort: &noSort}
		var colors []string
		for _, sl := range s.Slices {
			trace.Labels = append(trace.Labels, sl.Label)
			trace.Values = append(trace.Values, sl.Value)
			if sl.Color != "" {
				colors = append(colors, sl.Color)
			}
		}
		if len(colors) == len(s.Slices) {
			trace.Marker = &Marker{Colors: colors}
		}
		fig.Data = append(fig.Data, trace)

	case KindScatter:
		for _, series := range s.Series {
			fig.Data = append(fig.Data, Trace{
				Type: "scatter",
				Mode: "markers",
				Name: series.Name,
				X:    series.X,
				Y:    series.Y,
			})
		}
	}
	return fig
}

func layoutAxis(a *Axis) *LayoutAxis {
	if a == nil {
		return nil
	}
	out := &LayoutAxis{Title: Text{Text: a.Title}}
	if a.Range != nil {
		out.Range = []float64{a.Range[0], a.Range[1]}
	}
	return out
}
