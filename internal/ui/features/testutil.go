// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/testutil"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Dataset      *dataset.Dataset
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	DataPath     string
}

// SetupTestFixture loads rows (testutil.SampleLaunches when none are given)
// through the real CSV loader and returns the handler dependencies.
func SetupTestFixture(t *testing.T, rows ...testutil.LaunchRow) *TestFixture {
	t.Helper()

	if len(rows) == 0 {
		rows = testutil.SampleLaunches()
	}
	path := testutil.WriteLaunchCSV(t, rows...)

	ds, err := dataset.Load(context.Background(), path)
	require.NoError(t, err)

	return &TestFixture{
		Dataset:      ds,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		DataPath:     path,
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout. The context is
// released when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
