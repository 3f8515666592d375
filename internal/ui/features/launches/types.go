package launches

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/filter"
)

// Signals are the Datastar signals of the dashboard page.
type Signals struct {
	Site        string  `json:"site"`
	PayloadLow  float64 `json:"payloadLow"`
	PayloadHigh float64 `json:"payloadHigh"`
}

// SignalsFrom converts a selection to page signals.
func SignalsFrom(sel filter.Selection) Signals {
	return Signals{Site: sel.Site, PayloadLow: sel.Payload.Low, PayloadHigh: sel.Payload.High}
}

// Selection converts the signals back into a filter selection.
func (s Signals) Selection() filter.Selection {
	return filter.Selection{Site: s.Site, Payload: filter.Range{Low: s.PayloadLow, High: s.PayloadHigh}}
}

// UnmarshalJSON overlays the signals present in b onto s. Range inputs may
// send their value as a string, so bounds accept numbers or numeric strings.
// Absent or empty values keep what s already holds.
func (s *Signals) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if v, ok := raw["site"]; ok {
		var site string
		if err := json.Unmarshal(v, &site); err != nil {
			return fmt.Errorf("site: %w", err)
		}
		s.Site = site
	}
	if err := overlayNumber(raw, "payloadLow", &s.PayloadLow); err != nil {
		return err
	}
	return overlayNumber(raw, "payloadHigh", &s.PayloadHigh)
}

func overlayNumber(raw map[string]json.RawMessage, key string, dst *float64) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	text := strings.Trim(strings.TrimSpace(string(v)), `"`)
	if text == "" || text == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", key, text)
	}
	if f < 0 {
		return fmt.Errorf("%s: %v is negative", key, f)
	}
	*dst = f
	return nil
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status     string   `json:"status"`
	DataPath   string   `json:"data_path"`
	Records    int      `json:"records"`
	Sites      []string `json:"sites"`
	MinPayload float64  `json:"min_payload_kg"`
	MaxPayload float64  `json:"max_payload_kg"`
}
