// Package filter narrows launch records by site and payload mass.
//
// Every function here is pure: inputs are never modified and each call
// returns a freshly allocated slice.
package filter

import "github.com/leapstack-labs/launchdash/internal/dataset"

// AllSites selects every launch site.
const AllSites = "ALL"

// PayloadPadding widens the slider bounds on each side before filtering so
// that values rounded onto a slider step are not dropped at the edges.
const PayloadPadding = 100.0

// Range is an inclusive payload mass interval in kilograms.
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// NewRange returns the range between a and b, whichever order they come in.
func NewRange(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Low: a, High: b}
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Pad returns a new range widened by padding on both sides.
func Pad(r Range, padding float64) Range {
	return Range{Low: r.Low - padding, High: r.High + padding}
}

// BySite returns the records launched from site, or all records for AllSites.
// An unknown site yields an empty result.
func BySite(records []dataset.LaunchRecord, site string) []dataset.LaunchRecord {
	out := make([]dataset.LaunchRecord, 0, len(records))
	for _, r := range records {
		if site == AllSites || r.Site == site {
			out = append(out, r)
		}
	}
	return out
}

// ByPayloadRange returns the records whose payload mass lies within r.
func ByPayloadRange(records []dataset.LaunchRecord, r Range) []dataset.LaunchRecord {
	out := make([]dataset.LaunchRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.PayloadMass) {
			out = append(out, rec)
		}
	}
	return out
}
