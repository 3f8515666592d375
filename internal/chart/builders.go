package chart

import (
	"fmt"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
)

// Outcome labels and colours used by the single-site pie.
const (
	LabelSuccess = "Success"
	LabelFailure = "Failure"
	ColorSuccess = "red"
	ColorFailure = "blue"
)

// Axis titles of the scatter chart.
const (
	AxisPayload = dataset.ColumnPayloadMass
	AxisClass   = dataset.ColumnClass
)

// Presentation constants.
var (
	titleAnchor   = Anchor{X: 0.4, Y: 0.9, XAnchor: "left", YAnchor: "top"}
	pieLegend     = Anchor{X: 0.6, Y: 0.9, XAnchor: "left", YAnchor: "top"}
	scatterLegend = Anchor{X: 0.01, Y: 0.8, XAnchor: "left", YAnchor: "top"}
)

// BuildSuccessPie builds the success pie for site from an already
// site-filtered subset.
//
// For filter.AllSites there is one slice per site weighted by its number of
// successful launches. For a single site there is one slice per outcome,
// counted, labelled Success/Failure and coloured red/blue.
func BuildSuccessPie(subset []dataset.LaunchRecord, site string) ChartSpec {
	spec := ChartSpec{
		Kind:        KindPie,
		Legend:      pieLegend,
		TitleAnchor: titleAnchor,
	}

	if site == filter.AllSites {
		spec.Title = "Successful launches of all launch sites"
		spec.Slices = groupSlices(subset,
			func(r dataset.LaunchRecord) string { return r.Site },
			func(r dataset.LaunchRecord) float64 { return float64(r.Class) },
		)
		return spec
	}

	spec.Title = fmt.Sprintf("Successful launches for %s launch site", site)
	spec.ColorMap = map[string]string{
		LabelSuccess: ColorSuccess,
		LabelFailure: ColorFailure,
	}
	spec.Slices = groupSlices(subset,
		outcomeLabel,
		func(dataset.LaunchRecord) float64 { return 1 },
	)
	for i := range spec.Slices {
		spec.Slices[i].Color = spec.ColorMap[spec.Slices[i].Label]
	}
	return spec
}

// BuildPayloadScatter plots payload mass against outcome, one series per
// booster version category. The x axis always spans padded, whatever the
// extent of subset.
func BuildPayloadScatter(subset []dataset.LaunchRecord, site string, padded filter.Range) ChartSpec {
	title := "Payload vs success for all sites"
	if site != filter.AllSites {
		title = fmt.Sprintf("Payload vs success for %s launch site", site)
	}

	spec := ChartSpec{
		Kind:        KindScatter,
		Title:       title,
		XAxis:       &Axis{Title: AxisPayload, Range: &[2]float64{padded.Low, padded.High}},
		YAxis:       &Axis{Title: AxisClass},
		Legend:      scatterLegend,
		TitleAnchor: titleAnchor,
	}

	index := make(map[string]int)
	for _, r := range subset {
		i, ok := index[r.BoosterCategory]
		if !ok {
			i = len(spec.Series)
			index[r.BoosterCategory] = i
			spec.Series = append(spec.Series, Series{Name: r.BoosterCategory})
		}
		spec.Series[i].X = append(spec.Series[i].X, r.PayloadMass)
		spec.Series[i].Y = append(spec.Series[i].Y, float64(r.Class))
	}
	return spec
}

// Placeholder is the empty chart shown when building kind failed.
func Placeholder(kind Kind, title string) ChartSpec {
	legend := pieLegend
	if kind == KindScatter {
		legend = scatterLegend
	}
	return ChartSpec{
		Kind:        kind,
		Title:       title,
		Legend:      legend,
		TitleAnchor: titleAnchor,
		Message:     "Chart unavailable",
	}
}

func outcomeLabel(r dataset.LaunchRecord) string {
	if r.Success() {
		return LabelSuccess
	}
	return LabelFailure
}

// groupSlices sums weight per key, keeping keys in order of first appearance.
func groupSlices(
	records []dataset.LaunchRecord,
	key func(dataset.LaunchRecord) string,
	weight func(dataset.LaunchRecord) float64,
) []Slice {
	index := make(map[string]int)
	var slices []Slice
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(slices)
			index[k] = i
			slices = append(slices, Slice{Label: k})
		}
		slices[i].Value += weight(r)
	}
	return slices
}
