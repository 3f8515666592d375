// Package dashboard wires the launch dataset, filters and chart builders into
// the two reactive edges of the launch records dashboard:
//
//	site-dropdown                 -> success-pie-chart
//	site-dropdown, payload-slider -> success-payload-scatter-chart
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/launchdash/internal/binding"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
)

// Input and output identifiers.
const (
	InputSite    = "site-dropdown"
	InputPayload = "payload-slider"

	OutputPie     = "success-pie-chart"
	OutputScatter = "success-payload-scatter-chart"
)

// Slider domain of the payload range control, in kilograms.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000
)

// NewDispatcher registers both chart outputs against ds. Failed outputs are
// replaced with a placeholder chart.
func NewDispatcher(ds *dataset.Dataset, logger *slog.Logger) (*binding.Dispatcher, error) {
	d := binding.New(
		binding.WithLogger(logger),
		binding.WithFallback(placeholderFor),
	)

	if err := d.Register(OutputPie, []string{InputSite}, func(_ context.Context, in binding.Values) (any, error) {
		site, err := binding.Get[string](in, InputSite)
		if err != nil {
			return nil, err
		}
		return PieChart(ds, site), nil
	}); err != nil {
		return nil, err
	}

	if err := d.Register(OutputScatter, []string{InputSite, InputPayload}, func(_ context.Context, in binding.Values) (any, error) {
		sel, err := SelectionFromValues(in)
		if err != nil {
			return nil, err
		}
		return ScatterChart(ds, sel), nil
	}); err != nil {
		return nil, err
	}

	return d, nil
}

// PieChart filters ds by site and builds the success pie.
func PieChart(ds *dataset.Dataset, site string) chart.ChartSpec {
	return chart.BuildSuccessPie(filter.BySite(ds.Records(), site), site)
}

// ScatterChart filters ds by site and padded payload range and builds the
// payload scatter.
func ScatterChart(ds *dataset.Dataset, sel filter.Selection) chart.ChartSpec {
	return chart.BuildPayloadScatter(filter.Apply(ds.Records(), sel), sel.Site, sel.PaddedPayload())
}

// Chart builds the named output for sel directly, bypassing the dispatcher.
func Chart(ds *dataset.Dataset, output string, sel filter.Selection) (chart.ChartSpec, error) {
	switch output {
	case OutputPie:
		return PieChart(ds, sel.Site), nil
	case OutputScatter:
		return ScatterChart(ds, sel), nil
	default:
		return chart.ChartSpec{}, fmt.Errorf("unknown chart %q", output)
	}
}

// Values converts a selection into dispatcher input values.
func Values(sel filter.Selection) binding.Values {
	return binding.Values{
		InputSite:    sel.Site,
		InputPayload: sel.Payload,
	}
}

// SelectionFromValues is the inverse of Values.
func SelectionFromValues(in binding.Values) (filter.Selection, error) {
	site, err := binding.Get[string](in, InputSite)
	if err != nil {
		return filter.Selection{}, err
	}
	payload, err := binding.Get[filter.Range](in, InputPayload)
	if err != nil {
		return filter.Selection{}, err
	}
	return filter.Selection{Site: site, Payload: payload}, nil
}

// IsInput reports whether name is one of the dashboard inputs.
func IsInput(name string) bool {
	return name == InputSite || name == InputPayload
}

// Placeholder is the chart drawn in place of output after a failed update.
func Placeholder(output string) chart.ChartSpec {
	if output == OutputPie {
		return chart.Placeholder(chart.KindPie, "Successful launches")
	}
	return chart.Placeholder(chart.KindScatter, "Payload vs success")
}

// UpdateSpec returns the chart carried by u, or the placeholder for its
// output when u holds no chart.
func UpdateSpec(u binding.Update) chart.ChartSpec {
	if spec, ok := u.Value.(chart.ChartSpec); ok {
		return spec
	}
	return Placeholder(u.Output)
}

func placeholderFor(output string, _ error) any {
	return Placeholder(output)
}
