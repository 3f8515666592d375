// Package dataset loads and holds the SpaceX launch records table.
//
// A Dataset is built once at startup and never mutated afterwards, so it is
// safe to share between any number of concurrent readers.
package dataset

// Columns the launch records CSV must provide. Any other columns are ignored.
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns lists the CSV columns in the order they are read.
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterCategory,
}

// KnownSites are the launch pads offered by the site selector.
var KnownSites = []string{
	"CCAFS LC-40",
	"CCAFS SLC-40",
	"KSC LC-39A",
	"VAFB SLC-4E",
}

// Outcome class values.
const (
	ClassFailure = 0
	ClassSuccess = 1
)

// LaunchRecord is one row of the launch records table.
type LaunchRecord struct {
	Site            string  `json:"launch_site" yaml:"launch_site"`
	PayloadMass     float64 `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	Class           int     `json:"class" yaml:"class"`
	BoosterCategory string  `json:"booster_version_category" yaml:"booster_version_category"`
}

// Success reports whether the launch outcome was a success.
func (r LaunchRecord) Success() bool {
	return r.Class == ClassSuccess
}
