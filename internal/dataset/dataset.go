package dataset

import (
	"errors"
	"slices"
)

// ErrNoRecords is returned when a dataset would hold no launch records.
var ErrNoRecords = errors.New("no launch records")

// Dataset is the immutable, in-memory launch records table.
type Dataset struct {
	path       string
	records    []LaunchRecord
	minPayload float64
	maxPayload float64
}

// New builds a Dataset from records, computing the payload extent once.
// The records are copied; later changes to the argument are not observed.
func New(records []LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	ds := &Dataset{
		records:    slices.Clone(records),
		minPayload: records[0].PayloadMass,
		maxPayload: records[0].PayloadMass,
	}
	for _, r := range records[1:] {
		ds.minPayload = min(ds.minPayload, r.PayloadMass)
		ds.maxPayload = max(ds.maxPayload, r.PayloadMass)
	}
	return ds, nil
}

// Path returns the file the dataset was loaded from, if any.
func (d *Dataset) Path() string {
	return d.path
}

// Records returns a copy of all launch records in file order.
func (d *Dataset) Records() []LaunchRecord {
	return slices.Clone(d.records)
}

// Len returns the number of launch records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// MinPayload returns the smallest payload mass in the dataset.
func (d *Dataset) MinPayload() float64 {
	return d.minPayload
}

// MaxPayload returns the largest payload mass in the dataset.
func (d *Dataset) MaxPayload() float64 {
	return d.maxPayload
}

// Sites returns the distinct launch sites in order of first appearance.
func (d *Dataset) Sites() []string {
	seen := make(map[string]struct{})
	var sites []string
	for _, r := range d.records {
		if _, ok := seen[r.Site]; ok {
			continue
		}
		seen[r.Site] = struct{}{}
		sites = append(sites, r.Site)
	}
	return sites
}
