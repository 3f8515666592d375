// Package launches provides the launch records dashboard page: the two
// filter inputs, the two charts and their SSE updates.
package launches

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	ds *dataset.Dataset,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	dispatcher, err := dashboard.NewDispatcher(ds, logger)
	if err != nil {
		return err
	}

	handlers := NewHandlers(ds, dispatcher, sessionStore, notify, logger)

	router.Get("/", handlers.DashboardPage)
	router.Get("/updates", handlers.DashboardUpdates)
	router.Post("/api/inputs/{input}", handlers.InputChanged)
	router.Get("/api/charts/{file}", handlers.ExportChart)
	router.Get("/healthz", handlers.Health)

	return nil
}
