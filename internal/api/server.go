// Copyright (c) 2026 Bnusa. All rights reserved.

/*
Package api wires the HTTP router, the middleware chain and the Kteb Nus
domain handlers into a runnable [http.Server].

Only this package and cmd/api touch net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/ktebnus/chapter"
	"github.com/yad-anakin/bnusa/internal/ktebnus/comment"
	"github.com/yad-anakin/bnusa/internal/ktebnus/like"
	"github.com/yad-anakin/bnusa/internal/platform/config"
	"github.com/yad-anakin/bnusa/internal/platform/constants"
	"github.com/yad-anakin/bnusa/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the HTTP handler sets mounted by [NewServer].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Book    *book.Handler
	Chapter *chapter.Handler
	Comment *comment.Handler
	Like    *like.Handler
}

// # Server Initialization

// NewServer builds the router with the full middleware chain and registers
// every route group. context stops the rate limiter's background sweeper.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter returns the chi router used by [NewServer].
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		h.Book.RegisterRoutes(api)
		h.Chapter.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
		h.Like.RegisterRoutes(api)
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
