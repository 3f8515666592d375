package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
)

// FormatJSON exports the Plotly figure instead of an image.
const FormatJSON = "json"

// ResolveOutput accepts an output id or its short name ("pie", "scatter").
func ResolveOutput(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case OutputPie, "pie":
		return OutputPie, nil
	case OutputScatter, "scatter":
		return OutputScatter, nil
	default:
		return "", fmt.Errorf("unknown chart %q (want pie or scatter)", name)
	}
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if format == FormatJSON {
		return "application/json"
	}
	return chart.Format(format).ContentType()
}

// Export writes output for sel in format: "json" for the figure, "png" or
// "svg" for an image. Empty charts cannot be exported as images and return
// chart.ErrEmptyChart.
func Export(w io.Writer, ds *dataset.Dataset, output string, sel filter.Selection, format string) error {
	spec, err := Chart(ds, output, sel.Normalize())
	if err != nil {
		return err
	}

	if strings.EqualFold(format, FormatJSON) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(spec.Figure())
	}

	f, err := chart.ParseFormat(format)
	if err != nil {
		return err
	}
	return chart.Render(w, spec, f)
}
