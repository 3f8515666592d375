// Package ui serves the launch records dashboard over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/ui/notifier"
	"github.com/leapstack-labs/launchdash/internal/ui/router"
)

// DatasetChangedMessage is shown on open pages when the CSV changes. The
// dataset is loaded once, so the new file needs a restart.
const DatasetChangedMessage = "The launch records file changed on disk. Restart launchdash to load it."

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// Server is the dashboard server.
type Server struct {
	dataset      *dataset.Dataset
	sessionStore *sessions.CookieStore
	host         string
	port         int
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier

	mu   sync.Mutex
	addr net.Addr
}

// Config holds configuration for the dashboard server.
type Config struct {
	Dataset       *dataset.Dataset
	Host          string
	Port          int
	Watch         bool
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new dashboard server. A Port of 0 picks a free port.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Dataset == nil {
		return nil, errors.New("ui: dataset is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("ui: session secret is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		dataset:      cfg.Dataset,
		sessionStore: sessionStore,
		host:         cfg.Host,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       logger,
		notifier:     notifier.New(),
	}, nil
}

// Handler builds the HTTP handler with all routes and middleware.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.dataset, s.sessionStore, s.notifier, s.logger); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the dashboard server and blocks until the context is
// cancelled. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.logger.Info("starting dashboard server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchDataset(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL returns the address the dashboard is reachable at. Before Serve has
// bound its listener it reports the configured address.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.addr != nil {
		return "http://" + s.addr.String()
	}
	return "http://" + net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchDataset tells open pages when the launch records file changes. The
// parent directory is watched so that editors which save by rename are seen.
func (s *Server) watchDataset(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if s.dataset.Path() == "" {
		s.logger.Warn("dataset has no file to watch")
		<-ctx.Done()
		return nil
	}
	target, err := filepath.Abs(s.dataset.Path())
	if err != nil {
		return fmt.Errorf("resolve launch records path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch launch records", "path", target, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}
	s.logger.Debug("watching launch records", "path", target)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.logger.Info("launch records changed on disk", "path", target, "op", event.Op.String())
				s.notifier.Broadcast(notifier.Event{
					Kind:    notifier.KindDatasetChanged,
					Message: DatasetChangedMessage,
				})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
