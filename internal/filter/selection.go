package filter

import (
	"strings"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// Selection is the filter state of one dashboard session.
type Selection struct {
	Site    string `json:"site" yaml:"site"`
	Payload Range  `json:"payload" yaml:"payload"`
}

// DefaultSelection selects every site over the dataset's full payload extent.
func DefaultSelection(ds *dataset.Dataset) Selection {
	return Selection{
		Site:    AllSites,
		Payload: Range{Low: ds.MinPayload(), High: ds.MaxPayload()},
	}
}

// Normalize fills an empty site with AllSites and orders the payload bounds.
func (s Selection) Normalize() Selection {
	if strings.TrimSpace(s.Site) == "" {
		s.Site = AllSites
	}
	s.Payload = NewRange(s.Payload.Low, s.Payload.High)
	return s
}

// PaddedPayload is the payload range actually used for filtering and display.
func (s Selection) PaddedPayload() Range {
	return Pad(s.Payload, PayloadPadding)
}

// Apply runs the site filter and then the padded payload filter.
func Apply(records []dataset.LaunchRecord, s Selection) []dataset.LaunchRecord {
	return ByPayloadRange(BySite(records, s.Site), s.PaddedPayload())
}
