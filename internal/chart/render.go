package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is a server-side export format.
type Format string

// Export formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrEmptyChart is returned by Render when there is nothing to draw.
// go-chart cannot draw an empty pie or an empty plot.
var ErrEmptyChart = errors.New("chart has no data to render")

const (
	exportWidth  = 800
	exportHeight = 500
)

var namedColors = map[string]drawing.Color{
	ColorSuccess: drawing.ColorRed,
	ColorFailure: drawing.ColorBlue,
}

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want png or svg)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// Render draws spec as an image with go-chart.
func Render(w io.Writer, spec ChartSpec, format Format) error {
	if spec.IsPlaceholder() || spec.IsEmpty() {
		return ErrEmptyChart
	}

	switch spec.Kind {
	case KindPie:
		return renderPie(w, spec, format.provider())
	case KindScatter:
		return renderScatter(w, spec, format.provider())
	default:
		return fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
}

func renderPie(w io.Writer, spec ChartSpec, rp gochart.RendererProvider) error {
	var total float64
	values := make([]gochart.Value, 0, len(spec.Slices))
	for i, sl := range spec.Slices {
		total += sl.Value
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%g)", sl.Label, sl.Value),
			Value: sl.Value,
			Style: gochart.Style{FillColor: colorFor(sl.Color, i)},
		})
	}
	// A pie of zeros has no angles to draw.
	if total == 0 {
		return ErrEmptyChart
	}

	pie := gochart.PieChart{
		Title:  spec.Title,
		Width:  exportWidth,
		Height: exportHeight,
		Values: values,
	}
	return pie.Render(rp, w)
}

func renderScatter(w io.Writer, spec ChartSpec, rp gochart.RendererProvider) error {
	series := make([]gochart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		xs, ys := s.X, s.Y
		// go-chart needs two values to compute a series range.
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0]}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    5,
				DotColor:    gochart.GetDefaultColor(i),
			},
		})
	}

	xAxis := gochart.XAxis{}
	if spec.XAxis != nil {
		xAxis.Name = spec.XAxis.Title
		if spec.XAxis.Range != nil {
			xAxis.Range = &gochart.ContinuousRange{Min: spec.XAxis.Range[0], Max: spec.XAxis.Range[1]}
		}
	}

	yName := AxisClass
	if spec.YAxis != nil {
		yName = spec.YAxis.Title
	}

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  exportWidth,
		Height: exportHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: xAxis,
		YAxis: gochart.YAxis{
			Name:  yName,
			Range: &gochart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(rp, w)
}

func colorFor(name string, i int) drawing.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return gochart.GetDefaultColor(i)
}
