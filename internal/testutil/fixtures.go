package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LaunchCSVHeader is the header line of a launch records CSV, with the extra
// columns the real export carries.
const LaunchCSVHeader = "Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category"

// LaunchRow is one row of a launch records CSV fixture.
type LaunchRow struct {
	Site     string
	Class    int
	Payload  float64
	Category string
}

// WriteLaunchCSV writes rows to a fresh CSV file in t.TempDir and returns
// its path.
func WriteLaunchCSV(t testing.TB, rows ...LaunchRow) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(LaunchCSVHeader + "\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%d,%s,%d,%g,F9 %s B%04d,%s\n", i+1, r.Site, r.Class, r.Payload, r.Category, 1000+i, r.Category)
	}

	path := filepath.Join(t.TempDir(), "spacex_launch_dash.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		t.Fatalf("write launch CSV: %v", err)
	}
	return path
}

// SampleLaunches is a small fixture covering every known site.
func SampleLaunches() []LaunchRow {
	return []LaunchRow{
		{Site: "CCAFS LC-40", Class: 0, Payload: 0, Category: "v1.0"},
		{Site: "CCAFS LC-40", Class: 1, Payload: 1950, Category: "v1.1"},
		{Site: "VAFB SLC-4E", Class: 0, Payload: 500, Category: "v1.1"},
		{Site: "KSC LC-39A", Class: 1, Payload: 2490, Category: "FT"},
		{Site: "KSC LC-39A", Class: 1, Payload: 5600, Category: "FT"},
		{Site: "CCAFS SLC-40", Class: 1, Payload: 3669, Category: "B5"},
		{Site: "VAFB SLC-4E", Class: 1, Payload: 9600, Category: "B4"},
	}
}
