// Package resources serves the dashboard's static assets.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Page assets.
const (
	Stylesheet = "dashboard.css"
	Script     = "dashboard.js"
)

// Client libraries loaded from a CDN. Plotly draws the charts; Datastar
// carries signals to the server and applies the patches it streams back.
const (
	PlotlyURL   = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
)
