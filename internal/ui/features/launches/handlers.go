package launches

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/launchdash/internal/binding"
	"github.com/leapstack-labs/launchdash/internal/chart"
	"github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/filter"
	"github.com/leapstack-labs/launchdash/internal/ui/features/launches/components"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// PageTitle is the dashboard heading and document title.
const PageTitle = "SpaceX Launch Records Dashboard"

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	dataset      *dataset.Dataset
	dispatcher   *binding.Dispatcher
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	ds *dataset.Dataset,
	dispatcher *binding.Dispatcher,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		dataset:      ds,
		dispatcher:   dispatcher,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// DashboardPage renders the page with both charts for the browser's last
// selection, or the initial selection on a first visit.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := openSession(h.sessionStore, r)
	sel := sess.Selection(h.dataset)
	if err := sess.Save(w, r); err != nil {
		h.logger.Warn("save session", "error", err)
	}

	figures := make(map[string]chart.Figure, 2)
	for _, u := range h.dispatcher.Dispatch(r.Context(), dashboard.Values(sel)) {
		figures[u.Output] = dashboard.UpdateSpec(u).Figure()
	}

	page := components.Page(components.PageData{
		Title:        PageTitle,
		Sites:        h.siteOptions(),
		Signals:      SignalsFrom(sel),
		SelectedSite: sel.Site,
		Pie:          figures[dashboard.OutputPie],
		Scatter:      figures[dashboard.OutputScatter],
	})
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DashboardUpdates is the long-lived SSE endpoint of the page. The charts
// are already rendered; it only pushes dataset notices.
func (h *Handlers) DashboardUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-updates:
			if err := sse.PatchElementTempl(components.Notice(ev)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// InputChanged handles a change of one dashboard input. It re-runs the
// charts that depend on that input and patches them into the page.
func (h *Handlers) InputChanged(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "input")
	if !dashboard.IsInput(input) {
		http.NotFound(w, r)
		return
	}

	sess := openSession(h.sessionStore, r)
	logger := h.logger.With("session", sess.ID(), "input", input)

	// Signals read before NewSSE, which consumes the response.
	signals := SignalsFrom(sess.Selection(h.dataset))
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, fmt.Sprintf("invalid signals: %v", err), http.StatusBadRequest)
		return
	}

	sel := signals.Selection().Normalize()
	sess.SetSelection(sel)
	if err := sess.Save(w, r); err != nil {
		logger.Warn("save session", "error", err)
	}

	logger.Debug("input changed", "site", sel.Site, "low", sel.Payload.Low, "high", sel.Payload.High)
	updates := h.dispatcher.Dispatch(r.Context(), dashboard.Values(sel), input)

	sse := datastar.NewSSE(w, r)

	if normalized := SignalsFrom(sel); normalized != signals {
		if err := sse.MarshalAndPatchSignals(normalized); err != nil {
			return
		}
	}

	for _, u := range updates {
		if u.Err != nil {
			_ = sse.ConsoleError(u.Err)
		}
		if err := sse.PatchElementTempl(components.ChartPanel(u.Output, dashboard.UpdateSpec(u).Figure())); err != nil {
			_ = sse.ConsoleError(err)
			continue
		}
		if err := sse.ExecuteScript(fmt.Sprintf("window.launchdash && window.launchdash.draw(%q)", u.Output)); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
}

// ExportChart serves GET /api/charts/{output}.{png|svg|json}. The selection
// comes from the site, min and max query parameters and defaults to the
// dashboard's initial selection.
func (h *Handlers) ExportChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	format := strings.TrimPrefix(ext, ".")

	output, err := dashboard.ResolveOutput(strings.TrimSuffix(file, ext))
	if err != nil || format == "" {
		http.NotFound(w, r)
		return
	}

	sel, err := h.selectionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := dashboard.Export(&buf, h.dataset, output, sel, format); err != nil {
		if errors.Is(err, chart.ErrEmptyChart) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", dashboard.ContentType(format))
	_, _ = w.Write(buf.Bytes())
}

// Health reports the loaded dataset.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:     "ok",
		DataPath:   h.dataset.Path(),
		Records:    h.dataset.Len(),
		Sites:      h.dataset.Sites(),
		MinPayload: h.dataset.MinPayload(),
		MaxPayload: h.dataset.MaxPayload(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode health", "error", err)
	}
}

func (h *Handlers) selectionFromQuery(r *http.Request) (filter.Selection, error) {
	sel := filter.DefaultSelection(h.dataset)
	q := r.URL.Query()

	if site := q.Get("site"); site != "" {
		sel.Site = site
	}
	for key, dst := range map[string]*float64{"min": &sel.Payload.Low, "max": &sel.Payload.High} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return filter.Selection{}, fmt.Errorf("%s must be a non-negative number, got %q", key, v)
		}
		*dst = f
	}
	return sel.Normalize(), nil
}

// siteOptions lists the known launch sites followed by any other site found
// in the dataset.
func (h *Handlers) siteOptions() []string {
	sites := slices.Clone(dataset.KnownSites)
	for _, s := range h.dataset.Sites() {
		if !slices.Contains(sites, s) {
			sites = append(sites, s)
		}
	}
	return sites
}
