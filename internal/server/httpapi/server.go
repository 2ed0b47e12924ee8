// Package httpapi exposes the service layer over HTTP: public auth endpoints
// plus bearer-token-protected watch-history and favorites endpoints.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkalvans/cinetrack/internal/logging"
	"github.com/mkalvans/cinetrack/internal/server/config"
	"github.com/mkalvans/cinetrack/internal/server/services"
)

// Server holds the shared dependencies of all HTTP handlers.
type Server struct {
	addr      string
	jwtSecret []byte
	logger    logging.Logger

	users     *services.UserService
	progress  *services.ProgressService
	favorites *services.FavoriteService
}

// NewServer wires handlers to services.
func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, progress *services.ProgressService, favorites *services.FavoriteService) *Server {
	return &Server{
		addr:      cfg.EndpointAddrHTTP,
		jwtSecret: []byte(cfg.SecretKey),
		logger:    logger,
		users:     users,
		progress:  progress,
		favorites: favorites,
	}
}

// Routes builds the chi router with all endpoints registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh-token", s.handleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/api/watch-history", func(r chi.Router) {
			r.Post("/", s.handleSaveProgress)
			r.Get("/", s.handleGetHistory)
			r.Get("/{slug}", s.handleGetHistoryForContent)
			r.Post("/{slug}/resume", s.handleResume)
		})

		r.Route("/api/favorites", func(r chi.Router) {
			r.Get("/", s.handleListFavorites)
			r.Post("/", s.handleAddFavorite)
			r.Delete("/{slug}", s.handleRemoveFavorite)
		})
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Routes()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "cinetrack",
	})
}
