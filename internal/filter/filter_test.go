package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

func records() []dataset.LaunchRecord {
	return []dataset.LaunchRecord{
		{Site: "CCAFS LC-40", PayloadMass: 0, Class: 0, BoosterCategory: "v1.0"},
		{Site: "CCAFS LC-40", PayloadMass: 1950, Class: 1, BoosterCategory: "v1.1"},
		{Site: "KSC LC-39A", PayloadMass: 1800, Class: 1, BoosterCategory: "FT"},
		{Site: "KSC LC-39A", PayloadMass: 4100, Class: 0, BoosterCategory: "FT"},
		{Site: "VAFB SLC-4E", PayloadMass: 9600, Class: 1, BoosterCategory: "B4"},
	}
}

func TestBySite(t *testing.T) {
	tests := []struct {
		site      string
		wantCount int
	}{
		{"CCAFS LC-40", 2},
		{"KSC LC-39A", 2},
		{"VAFB SLC-4E", 1},
		{"CCAFS SLC-40", 0},
		{"ksc lc-39a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.site, func(t *testing.T) {
			got := BySite(records(), tt.site)
			assert.Len(t, got, tt.wantCount)
			for _, r := range got {
				assert.Equal(t, tt.site, r.Site)
			}
		})
	}
}

func TestBySite_All(t *testing.T) {
	all := records()
	assert.Equal(t, all, BySite(all, AllSites))
}

func TestBySite_NoMatchIsEmptyNotNil(t *testing.T) {
	got := BySite(records(), "Boca Chica")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestByPayloadRange(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []float64
	}{
		{"inclusive bounds", Range{Low: 1800, High: 4100}, []float64{1950, 1800, 4100}},
		{"single point", Range{Low: 1950, High: 1950}, []float64{1950}},
		{"nothing inside", Range{Low: 5000, High: 9000}, nil},
		{"zero included", Range{Low: 0, High: 0}, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []float64
			for _, r := range ByPayloadRange(records(), tt.r) {
				assert.True(t, tt.r.Contains(r.PayloadMass))
				got = append(got, r.PayloadMass)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestByPayloadRange_FullExtentIsIdentity(t *testing.T) {
	ds, err := dataset.New(records())
	require.NoError(t, err)

	got := ByPayloadRange(ds.Records(), Range{Low: ds.MinPayload(), High: ds.MaxPayload()})
	assert.Equal(t, ds.Records(), got)
}

func TestPad(t *testing.T) {
	r := Range{Low: 2000, High: 4000}
	padded := Pad(r, PayloadPadding)

	assert.Equal(t, Range{Low: 1900, High: 4100}, padded)
	assert.Equal(t, Range{Low: 2000, High: 4000}, r, "input must not change")
}

func TestNewRange(t *testing.T) {
	assert.Equal(t, Range{Low: 1, High: 2}, NewRange(1, 2))
	assert.Equal(t, Range{Low: 1, High: 2}, NewRange(2, 1))
}

func TestFiltersCommute(t *testing.T) {
	r := Range{Low: 1000, High: 5000}
	a := ByPayloadRange(BySite(records(), "KSC LC-39A"), r)
	b := BySite(ByPayloadRange(records(), r), "KSC LC-39A")
	assert.Equal(t, a, b)
}

// A slider at [2000, 4000] filters on [1900, 4100].
func TestApply_SliderPadding(t *testing.T) {
	in := []dataset.LaunchRecord{
		{Site: "A", PayloadMass: 1950, Class: 1},
		{Site: "A", PayloadMass: 1800, Class: 0},
		{Site: "A", PayloadMass: 4100, Class: 1},
		{Site: "A", PayloadMass: 4101, Class: 1},
	}

	got := Apply(in, Selection{Site: AllSites, Payload: Range{Low: 2000, High: 4000}})

	require.Len(t, got, 2)
	assert.InDelta(t, 1950.0, got[0].PayloadMass, 1e-9)
	assert.InDelta(t, 4100.0, got[1].PayloadMass, 1e-9)
}
