// Package components renders the dashboard page and the fragments patched
// into it over SSE.
package components

//go:generate templ generate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dashboard"
)

// NoticeID is the element that receives dataset-changed notices.
const NoticeID = "notice"

// AllSitesLabel is the dropdown label of the ALL option.
const AllSitesLabel = "All Sites"

// tickStep spaces the labels under the payload slider.
const tickStep = 2500

var (
	sliderMin  = strconv.Itoa(dashboard.SliderMin)
	sliderMax  = strconv.Itoa(dashboard.SliderMax)
	sliderStep = strconv.Itoa(dashboard.SliderStep)
)

// PageData is everything the dashboard page renders.
type PageData struct {
	Title        string
	Sites        []string
	Signals      any
	SelectedSite string
	Pie          chart.Figure
	Scatter      chart.Figure
}

// jsonAttr encodes v for a data-* attribute.
func jsonAttr(what string, v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", what, err)
	}
	return string(raw), nil
}

// inputPost is the Datastar action that reports a change of input.
func inputPost(input string) string {
	return fmt.Sprintf("@post('/api/inputs/%s')", input)
}

func sliderTicks() []string {
	var ticks []string
	for v := dashboard.SliderMin; v <= dashboard.SliderMax; v += tickStep {
		ticks = append(ticks, strconv.Itoa(v))
	}
	return ticks
}
