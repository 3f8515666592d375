package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/binding"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
	"github.com/leapstack-labs/launchdash/internal/testutil"
)

func newDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]dataset.LaunchRecord{
		{Site: "CCAFS LC-40", PayloadMass: 1950, Class: 1, BoosterCategory: "FT"},
		{Site: "CCAFS LC-40", PayloadMass: 1800, Class: 0, BoosterCategory: "v1.1"},
		{Site: "KSC LC-39A", PayloadMass: 5300, Class: 1, BoosterCategory: "FT"},
	})
	require.NoError(t, err)
	return ds
}

func TestNewDispatcher_Edges(t *testing.T) {
	d, err := NewDispatcher(newDataset(t), testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{OutputPie, OutputScatter}, d.Affected(InputSite))
	assert.Equal(t, []string{OutputScatter}, d.Affected(InputPayload))
}

func TestDispatch_SiteChange(t *testing.T) {
	ds := newDataset(t)
	d, err := NewDispatcher(ds, testutil.NewTestLogger(t))
	require.NoError(t, err)

	sel := filter.Selection{Site: "CCAFS LC-40", Payload: filter.Range{Low: 2000, High: 4000}}
	updates := d.Dispatch(context.Background(), Values(sel), InputSite)
	require.Len(t, updates, 2)

	pie, ok := updates[0].Value.(chart.ChartSpec)
	require.True(t, ok)
	assert.Equal(t, []chart.Slice{
		{Label: "Success", Value: 1, Color: "red"},
		{Label: "Failure", Value: 1, Color: "blue"},
	}, pie.Slices)

	scatter, ok := updates[1].Value.(chart.ChartSpec)
	require.True(t, ok)
	// Slider [2000, 4000] keeps 1950 and drops 1800.
	require.Len(t, scatter.Series, 1)
	assert.Equal(t, []float64{1950}, scatter.Series[0].X)
	assert.Equal(t, [2]float64{1900, 4100}, *scatter.XAxis.Range)
}

func TestDispatch_PayloadChangeLeavesPieAlone(t *testing.T) {
	d, err := NewDispatcher(newDataset(t), testutil.NewTestLogger(t))
	require.NoError(t, err)

	updates := d.Dispatch(context.Background(), Values(filter.DefaultSelection(newDataset(t))), InputPayload)
	require.Len(t, updates, 1)
	assert.Equal(t, OutputScatter, updates[0].Output)
}

func TestDispatch_BadInputFallsBackToPlaceholder(t *testing.T) {
	d, err := NewDispatcher(newDataset(t), testutil.NewTestLogger(t))
	require.NoError(t, err)

	in := binding.Values{InputSite: "ALL", InputPayload: "not a range"}
	updates := d.Dispatch(context.Background(), in)
	require.Len(t, updates, 2)

	assert.NoError(t, updates[0].Err)

	var renderErr *binding.RenderError
	require.True(t, errors.As(updates[1].Err, &renderErr))
	spec, ok := updates[1].Value.(chart.ChartSpec)
	require.True(t, ok)
	assert.True(t, spec.IsPlaceholder())
	assert.Equal(t, chart.KindScatter, spec.Kind)
}

func TestUpdateSpec(t *testing.T) {
	ds := newDataset(t)
	pie := PieChart(ds, filter.AllSites)

	assert.Equal(t, pie, UpdateSpec(binding.Update{Output: OutputPie, Value: pie}))

	missing := UpdateSpec(binding.Update{Output: OutputPie, Err: errors.New("boom")})
	assert.True(t, missing.IsPlaceholder())
	assert.Equal(t, chart.KindPie, missing.Kind)
	assert.Equal(t, Placeholder(OutputPie), missing)

	wrongType := UpdateSpec(binding.Update{Output: OutputScatter, Value: 42})
	assert.True(t, wrongType.IsPlaceholder())
	assert.Equal(t, chart.KindScatter, wrongType.Kind)
	assert.Equal(t, ScatterChart(ds, filter.DefaultSelection(ds)).Legend, wrongType.Legend)
}

func TestDispatcherMatchesDirectBuild(t *testing.T) {
	ds := newDataset(t)
	d, err := NewDispatcher(ds, testutil.NewTestLogger(t))
	require.NoError(t, err)

	sel := filter.DefaultSelection(ds)
	updates := d.Dispatch(context.Background(), Values(sel))
	require.Len(t, updates, 2)

	for _, u := range updates {
		want, err := Chart(ds, u.Output, sel)
		require.NoError(t, err)
		if diff := cmp.Diff(want, u.Value); diff != "" {
			t.Errorf("%s mismatch (-direct +dispatched):\n%s", u.Output, diff)
		}
	}
}

func TestChart_Unknown(t *testing.T) {
	_, err := Chart(newDataset(t), "histogram", filter.Selection{})
	assert.Error(t, err)
}

func TestSelectionFromValues(t *testing.T) {
	sel := filter.Selection{Site: "KSC LC-39A", Payload: filter.Range{Low: 1, High: 2}}

	got, err := SelectionFromValues(Values(sel))
	require.NoError(t, err)
	assert.Equal(t, sel, got)

	_, err = SelectionFromValues(binding.Values{InputSite: "ALL"})
	assert.Error(t, err)
}

func TestIsInput(t *testing.T) {
	assert.True(t, IsInput(InputSite))
	assert.True(t, IsInput(InputPayload))
	assert.False(t, IsInput(OutputPie))
}
