package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
)

// threeLaunches is sites {A, A, B} with classes {1, 0, 1}.
func threeLaunches() []dataset.LaunchRecord {
	return []dataset.LaunchRecord{
		{Site: "A", PayloadMass: 1950, Class: 1, BoosterCategory: "FT"},
		{Site: "A", PayloadMass: 1800, Class: 0, BoosterCategory: "v1.1"},
		{Site: "B", PayloadMass: 4000, Class: 1, BoosterCategory: "FT"},
	}
}

func TestBuildSuccessPie_AllSites(t *testing.T) {
	spec := BuildSuccessPie(threeLaunches(), filter.AllSites)

	assert.Equal(t, KindPie, spec.Kind)
	assert.Equal(t, "Successful launches of all launch sites", spec.Title)
	assert.Equal(t, []Slice{
		{Label: "A", Value: 1},
		{Label: "B", Value: 1},
	}, spec.Slices)
	assert.Nil(t, spec.ColorMap, "all-sites pie has no outcome colouring")
}

func TestBuildSuccessPie_SingleSite(t *testing.T) {
	subset := filter.BySite(threeLaunches(), "A")
	spec := BuildSuccessPie(subset, "A")

	assert.Equal(t, "Successful launches for A launch site", spec.Title)
	assert.Equal(t, []Slice{
		{Label: LabelSuccess, Value: 1, Color: "red"},
		{Label: LabelFailure, Value: 1, Color: "blue"},
	}, spec.Slices)
	assert.Equal(t, map[string]string{"Success": "red", "Failure": "blue"}, spec.ColorMap)
}

func TestBuildSuccessPie_Anchors(t *testing.T) {
	spec := BuildSuccessPie(threeLaunches(), filter.AllSites)

	assert.Equal(t, Anchor{X: 0.6, Y: 0.9, XAnchor: "left", YAnchor: "top"}, spec.Legend)
	assert.Equal(t, Anchor{X: 0.4, Y: 0.9, XAnchor: "left", YAnchor: "top"}, spec.TitleAnchor)
}

func TestBuildSuccessPie_Empty(t *testing.T) {
	spec := BuildSuccessPie(filter.BySite(threeLaunches(), "C"), "C")

	assert.Equal(t, KindPie, spec.Kind)
	assert.True(t, spec.IsEmpty())
	assert.False(t, spec.IsPlaceholder())
	assert.Equal(t, "Successful launches for C launch site", spec.Title)
}

func TestBuildPayloadScatter(t *testing.T) {
	padded := filter.Pad(filter.Range{Low: 2000, High: 4000}, filter.PayloadPadding)
	spec := BuildPayloadScatter(threeLaunches(), filter.AllSites, padded)

	assert.Equal(t, KindScatter, spec.Kind)
	assert.Equal(t, "Payload vs success for all sites", spec.Title)
	assert.Equal(t, []Series{
		{Name: "FT", X: []float64{1950, 4000}, Y: []float64{1, 1}},
		{Name: "v1.1", X: []float64{1800}, Y: []float64{0}},
	}, spec.Series)
	assert.Equal(t, Anchor{X: 0.01, Y: 0.8, XAnchor: "left", YAnchor: "top"}, spec.Legend)
	assert.Equal(t, Anchor{X: 0.4, Y: 0.9, XAnchor: "left", YAnchor: "top"}, spec.TitleAnchor)
	require.NotNil(t, spec.YAxis)
	assert.Equal(t, AxisClass, spec.YAxis.Title)
}

func TestBuildPayloadScatter_SiteTitle(t *testing.T) {
	spec := BuildPayloadScatter(nil, "KSC LC-39A", filter.Range{})
	assert.Equal(t, "Payload vs success for KSC LC-39A launch site", spec.Title)
}

// The x axis spans the padded slider range, not the data.
func TestBuildPayloadScatter_AxisRangeIsPaddedSlider(t *testing.T) {
	tests := []struct {
		name   string
		slider filter.Range
	}{
		{"narrower than data", filter.Range{Low: 2000, High: 3000}},
		{"wider than data", filter.Range{Low: 0, High: 10000}},
		{"degenerate", filter.Range{Low: 5000, High: 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := BuildPayloadScatter(threeLaunches(), filter.AllSites, filter.Pad(tt.slider, filter.PayloadPadding))

			require.NotNil(t, spec.XAxis)
			require.NotNil(t, spec.XAxis.Range)
			assert.Equal(t, [2]float64{tt.slider.Low - 100, tt.slider.High + 100}, *spec.XAxis.Range)
			assert.Equal(t, AxisPayload, spec.XAxis.Title)
		})
	}
}

func TestBuildPayloadScatter_Empty(t *testing.T) {
	spec := BuildPayloadScatter(nil, "C", filter.Range{Low: -100, High: 100})

	assert.True(t, spec.IsEmpty())
	require.NotNil(t, spec.XAxis.Range)
	assert.Equal(t, [2]float64{-100, 100}, *spec.XAxis.Range)
}

func TestBuilders_Idempotent(t *testing.T) {
	records := threeLaunches()
	padded := filter.Range{Low: 1900, High: 4100}

	for _, site := range []string{filter.AllSites, "A", "B", "C"} {
		subset := filter.BySite(records, site)

		if diff := cmp.Diff(BuildSuccessPie(subset, site), BuildSuccessPie(subset, site)); diff != "" {
			t.Errorf("pie for %s differs between calls (-first +second):\n%s", site, diff)
		}
		if diff := cmp.Diff(BuildPayloadScatter(subset, site, padded), BuildPayloadScatter(subset, site, padded)); diff != "" {
			t.Errorf("scatter for %s differs between calls (-first +second):\n%s", site, diff)
		}
	}
}

func TestBuilders_DoNotModifyInput(t *testing.T) {
	records := threeLaunches()
	want := threeLaunches()

	_ = BuildSuccessPie(records, filter.AllSites)
	_ = BuildPayloadScatter(records, filter.AllSites, filter.Range{Low: 0, High: 1})

	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records modified (-want +got):\n%s", diff)
	}
}

func TestPlaceholder(t *testing.T) {
	spec := Placeholder(KindScatter, "Payload vs success")

	assert.Equal(t, KindScatter, spec.Kind)
	assert.True(t, spec.IsPlaceholder())
	assert.True(t, spec.IsEmpty())
	assert.Equal(t, scatterLegend, spec.Legend)

	pie := Placeholder(KindPie, "Successful launches")
	assert.Equal(t, pieLegend, pie.Legend)
	assert.Equal(t, BuildSuccessPie(nil, filter.AllSites).Legend, pie.Legend)
	assert.Equal(t, BuildPayloadScatter(nil, filter.AllSites, filter.Range{}).Legend, spec.Legend)
}
