// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/openreader/storefront/internal/core/catalog"
	"github.com/openreader/storefront/internal/core/payment"
	"github.com/openreader/storefront/internal/core/proposal"
	"github.com/openreader/storefront/internal/core/purchase"
	"github.com/openreader/storefront/internal/platform/config"
	"github.com/openreader/storefront/internal/platform/constants"
	"github.com/openreader/storefront/internal/platform/middleware"
	"github.com/openreader/storefront/internal/users/telegram"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Catalog serves categories, books, reviews and tags.
	Catalog *catalog.Handler

	// Purchase serves purchase status and confirmation.
	Purchase *purchase.Handler

	// Stars issues mock Telegram Stars invoices.
	Stars *payment.Handler

	// Proposal serves book proposals, votes and reviews.
	Proposal *proposal.Handler

	// Telegram exchanges init data for voter tokens. Nil when voting is not
	// configured.
	Telegram *telegram.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg, cfg.CORSOrigins))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Ungated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RequireTestEnv {
			api.Use(middleware.RequireTestEnv())
		}
		api.Use(middleware.Authenticate(verifier))

		api.Mount("/catalog", h.Catalog.Routes())
		api.Mount("/purchases", h.Purchase.Routes())
		api.Mount("/stars", h.Stars.Routes())
		api.Mount("/proposals", h.Proposal.Routes())

		if h.Telegram != nil {
			api.Mount("/auth", h.Telegram.Routes())
		}
	})

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

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
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
