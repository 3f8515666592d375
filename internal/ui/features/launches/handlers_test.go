package launches

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
	"github.com/leapstack-labs/launchdash/internal/testutil"
	"github.com/leapstack-labs/launchdash/internal/ui/features"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	logger := testutil.NewTestLogger(t)

	dispatcher, err := dashboard.NewDispatcher(fixture.Dataset, logger)
	require.NoError(t, err)

	return NewHandlers(fixture.Dataset, dispatcher, fixture.SessionStore, fixture.Notifier, logger), fixture
}

func postInput(t *testing.T, h *Handlers, input, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/inputs/"+input, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	req = features.RequestWithPathParam(req, "input", input)

	rec := httptest.NewRecorder()
	h.InputChanged(rec, req)
	return rec
}

// =============================================================================
// DashboardPage
// =============================================================================

func TestDashboardPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.DashboardPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>SpaceX Launch Records Dashboard</title>",
		"data-init=\"@get('/updates')\"",
		`id="site-dropdown"`,
		`<option value="ALL" selected>All Sites</option>`,
		`id="payload-slider"`,
		"data-bind:payload-low",
		"data-bind:payload-high",
		`id="success-pie-chart"`,
		`id="success-payload-scatter-chart"`,
		"Successful launches of all launch sites",
		"Payload vs success for all sites",
	} {
		assert.Contains(t, body, want)
	}
	for _, site := range dataset.KnownSites {
		assert.Contains(t, body, `<option value="`+site+`"`)
	}
	assert.NotEmpty(t, rec.Result().Cookies(), "session cookie should be set")
}

func TestDashboardPage_InitialSignals(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.DashboardPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Initial payload range is the dataset extent, unpadded.
	want := SignalsFrom(filter.DefaultSelection(fixture.Dataset))
	raw, err := json.Marshal(want)
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), strings.ReplaceAll(string(raw), `"`, "&#34;"))
}

// =============================================================================
// InputChanged
// =============================================================================

func TestInputChanged_Site(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postInput(t, h, dashboard.InputSite, `{"site":"KSC LC-39A","payloadLow":0,"payloadHigh":10000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, `id="success-pie-chart"`)
	assert.Contains(t, body, `id="success-payload-scatter-chart"`)
	assert.Contains(t, body, "Successful launches for KSC LC-39A launch site")
	assert.Contains(t, body, "Payload vs success for KSC LC-39A launch site")
	assert.Contains(t, body, "launchdash.draw")
	assert.NotContains(t, body, "datastar-patch-signals", "signals were already normalized")
}

func TestInputChanged_PayloadOnlyRedrawsScatter(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postInput(t, h, dashboard.InputPayload, `{"site":"ALL","payloadLow":"2000","payloadHigh":"4000"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="success-payload-scatter-chart"`)
	assert.NotContains(t, body, `id="success-pie-chart"`)
	// Padded axis range.
	assert.Contains(t, body, "[1900,4100]")
}

func TestInputChanged_ReversedBoundsArePatchedBack(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postInput(t, h, dashboard.InputPayload, `{"site":"ALL","payloadLow":5000,"payloadHigh":1000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, `"payloadLow":1000`)
	assert.Contains(t, body, `"payloadHigh":5000`)
}

func TestInputChanged_Errors(t *testing.T) {
	h, _ := setupTestHandlers(t)

	tests := []struct {
		name       string
		input      string
		body       string
		wantStatus int
	}{
		{"unknown input", "launch-button", `{}`, http.StatusNotFound},
		{"output is not an input", dashboard.OutputPie, `{}`, http.StatusNotFound},
		{"non numeric bound", dashboard.InputPayload, `{"payloadLow":"heavy"}`, http.StatusBadRequest},
		{"negative bound", dashboard.InputPayload, `{"payloadHigh":-1}`, http.StatusBadRequest},
		{"malformed json", dashboard.InputSite, `{"site":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postInput(t, h, tt.input, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestInputChanged_SelectionSurvivesReload(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postInput(t, h, dashboard.InputSite, `{"site":"VAFB SLC-4E","payloadLow":0,"payloadHigh":9600}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	page := httptest.NewRecorder()
	h.DashboardPage(page, req)

	body := page.Body.String()
	assert.Contains(t, body, `<option value="VAFB SLC-4E" selected>`)
	assert.Contains(t, body, "Successful launches for VAFB SLC-4E launch site")
}

func TestInputChanged_PartialSignalsKeepSession(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postInput(t, h, dashboard.InputSite, `{"site":"KSC LC-39A","payloadLow":2000,"payloadHigh":6000}`)
	cookies := rec.Result().Cookies()

	// Only the site is sent; the bounds come from the session.
	rec = postInput(t, h, dashboard.InputSite, `{"site":"CCAFS LC-40"}`, cookies...)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[1900,6100]")
}

// =============================================================================
// ExportChart and Health
// =============================================================================

func TestExportChart(t *testing.T) {
	h, _ := setupTestHandlers(t)

	tests := []struct {
		name            string
		file            string
		query           string
		wantStatus      int
		wantContentType string
	}{
		{"pie png", "success-pie-chart.png", "", http.StatusOK, "image/png"},
		{"scatter svg by short name", "scatter.svg", "?min=1000&max=6000", http.StatusOK, "image/svg+xml"},
		{"figure json", "pie.json", "?site=KSC+LC-39A", http.StatusOK, "application/json"},
		{"empty selection", "scatter.png", "?site=Nowhere", http.StatusNoContent, ""},
		{"unknown chart", "histogram.png", "", http.StatusNotFound, ""},
		{"missing extension", "pie", "", http.StatusNotFound, ""},
		{"unsupported format", "pie.gif", "", http.StatusBadRequest, ""},
		{"bad bound", "pie.png", "?min=abc", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/charts/"+tt.file+tt.query, nil)
			req = features.RequestWithPathParam(req, "file", tt.file)
			rec := httptest.NewRecorder()

			h.ExportChart(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantContentType != "" {
				assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
				assert.NotZero(t, rec.Body.Len())
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, fixture.Dataset.Len(), resp.Records)
	assert.Equal(t, 0.0, resp.MinPayload)
	assert.Equal(t, 9600.0, resp.MaxPayload)
	assert.Len(t, resp.Sites, 4)
}

// =============================================================================
// DashboardUpdates
// =============================================================================

func TestDashboardUpdates_PushesNotice(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.RequestWithTimeout(t, httptest.NewRequest(http.MethodGet, "/updates", nil), 500*time.Millisecond)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.DashboardUpdates(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return fixture.Notifier.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	fixture.Notifier.Broadcast(notifier.Event{Kind: notifier.KindDatasetChanged, Message: "launch records changed"})

	<-done
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "launch records changed")
	assert.Equal(t, 0, fixture.Notifier.Subscribers(), "stream should unsubscribe when the client leaves")
}
