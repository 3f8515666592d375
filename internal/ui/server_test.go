package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/testutil"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
)

func newTestServer(t *testing.T, watch bool) (*Server, string) {
	t.Helper()

	path := testutil.WriteLaunchCSV(t, testutil.SampleLaunches()...)
	ds, err := dataset.Load(context.Background(), path)
	require.NoError(t, err)

	srv, err := NewServer(Config{
		Dataset:       ds,
		Host:          "127.0.0.1",
		Port:          0,
		Watch:         watch,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		Logger:        testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return srv, path
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(Config{SessionSecret: "x"})
	assert.ErrorContains(t, err, "dataset")

	ds, err := dataset.New([]dataset.LaunchRecord{{Site: "KSC LC-39A", PayloadMass: 1, Class: 1, BoosterCategory: "FT"}})
	require.NoError(t, err)
	_, err = NewServer(Config{Dataset: ds})
	assert.ErrorContains(t, err, "session secret")
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t, false)
	handler, err := srv.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	tests := []struct {
		path        string
		wantStatus  int
		wantContent string
	}{
		{"/", http.StatusOK, "SpaceX Launch Records Dashboard"},
		{"/healthz", http.StatusOK, `"records":7`},
		{"/static/dashboard.js", http.StatusOK, "launchdash"},
		{"/static/dashboard.css", http.StatusOK, ".chart"},
		{"/api/charts/success-pie-chart.json", http.StatusOK, `"type": "pie"`},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.wantContent != "" {
				assert.Contains(t, string(body), tt.wantContent)
			}
		})
	}
}

func TestServer_InputRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t, false)
	handler, err := srv.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/inputs/site-dropdown", "application/json",
		strings.NewReader(`{"site":"CCAFS LC-40","payloadLow":0,"payloadHigh":10000}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Successful launches for CCAFS LC-40 launch site")
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx) }()

	require.Eventually(t, func() bool {
		return !strings.HasSuffix(srv.URL(), ":0")
	}, 2*time.Second, 10*time.Millisecond)

	var health map[string]any
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL() + "/healthz")
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		return json.NewDecoder(resp.Body).Decode(&health) == nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ok", health["status"])

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_WatchNotifiesOnChange(t *testing.T) {
	srv, path := newTestServer(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := srv.Notifier().Subscribe()
	defer srv.Notifier().Unsubscribe(events)

	done := make(chan error, 1)
	go func() { done <- srv.watchDataset(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("8,KSC LC-39A,1,4000,F9 FT B1099,FT\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case ev := <-events:
		assert.Equal(t, notifier.KindDatasetChanged, ev.Kind)
		assert.Equal(t, DatasetChangedMessage, ev.Message)
	case <-time.After(3 * time.Second):
		t.Fatal("no dataset-changed event")
	}

	cancel()
	assert.NoError(t, <-done)
}
