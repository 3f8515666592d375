// Package router sets up HTTP routes for the dashboard server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	launchesFeature "github.com/leapstack-labs/launchdash/internal/ui/features/launches"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
	"github.com/leapstack-labs/launchdash/internal/ui/resources"
)

// SetupRoutes configures all routes for the dashboard server.
func SetupRoutes(
	router chi.Router,
	ds *dataset.Dataset,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	return launchesFeature.SetupRoutes(router, ds, sessionStore, notify, logger)
}
