// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Open Reader storefront API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load the catalog fixtures.
//  4. Open the purchase store (memory, Redis or Badger).
//  5. Connect to PostgreSQL and migrate, when proposals are persisted.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openreader/storefront/internal/api"
	"github.com/openreader/storefront/internal/core/catalog"
	"github.com/openreader/storefront/internal/core/payment"
	"github.com/openreader/storefront/internal/core/proposal"
	"github.com/openreader/storefront/internal/core/purchase"
	"github.com/openreader/storefront/internal/platform/config"
	"github.com/openreader/storefront/internal/platform/constants"
	"github.com/openreader/storefront/internal/platform/middleware"
	"github.com/openreader/storefront/internal/platform/migration"
	pgstore "github.com/openreader/storefront/internal/platform/postgres"
	redisstore "github.com/openreader/storefront/internal/platform/redis"
	"github.com/openreader/storefront/internal/platform/sec"
	"github.com/openreader/storefront/internal/platform/storage"
	"github.com/openreader/storefront/internal/users/telegram"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("purchase_store", cfg.PurchaseStore),
		slog.Bool("require_test_env", cfg.RequireTestEnv),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	health := api.HealthDependencies{}

	// ── 3. Catalog ────────────────────────────────────────────────────────
	dataset, err := catalog.LoadDataset(cfg.CatalogDir)
	must(log, err, "load catalog fixtures")
	log.Info("catalog_loaded",
		slog.Int("books", len(dataset.Books)),
		slog.Int("categories", len(dataset.Categories)),
		slog.Int("reviews", len(dataset.Reviews)),
	)

	// ── 4. Purchase Store ─────────────────────────────────────────────────
	var purchases purchase.Store
	switch cfg.PurchaseStore {
	case config.PurchaseStoreRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
		purchases = purchase.NewRedisStore(rdb)

	case config.PurchaseStoreBadger:
		badgerStore, err := purchase.OpenBadgerStore(cfg.BadgerPath, false, log)
		must(log, err, "open badger purchase store")
		defer func() {
			if cerr := badgerStore.Close(); cerr != nil {
				log.Error("badger_close_error", slog.Any("error", cerr))
			}
		}()
		purchases = badgerStore

	default:
		purchases = purchase.NewMemoryStore()
	}

	// ── 5. Proposals (PostgreSQL or memory) ───────────────────────────────
	var proposals proposal.Repository = proposal.NewMemoryRepository()
	if cfg.DatabaseURL != "" {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
		proposals = proposal.NewPostgresRepository(pool)
	} else {
		log.Warn("proposals_in_memory", slog.String("reason", "DATABASE_URL is not set"))
	}

	files, err := storage.NewLocalStorage(cfg.StorageDir, cfg.StoragePublicURL)
	must(log, err, "prepare file storage")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	proposalService := proposal.NewService(proposals, files, cfg.VoterAllowList())

	handlers := api.Handlers{
		Catalog:  catalog.NewHandler(catalog.NewService(catalog.NewMemoryRepository(dataset), cfg.CatalogLocale)),
		Purchase: purchase.NewHandler(purchase.NewService(purchases)),
		Stars:    payment.NewHandler(payment.NewIssuer(cfg.InvoiceBaseURL)),
		Proposal: proposal.NewHandler(proposalService),
	}
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(health, log)

	var verifier middleware.TokenVerifier
	if cfg.VotingEnabled() {
		tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
		must(log, err, "initialize voter token service")

		identity, err := telegram.NewService(cfg.TelegramBotToken, cfg.InitDataMaxAge, cfg.VoterTokenTTL, tokens, proposalService)
		must(log, err, "initialize telegram identity")

		verifier = tokens
		handlers.Telegram = telegram.NewHandler(identity)
		log.Info("voting_enabled", slog.Int("allowed_voters", cfg.VoterAllowList().Len()))
	} else {
		log.Warn("voting_disabled", slog.String("reason", "TELEGRAM_BOT_TOKEN or SESSION_SECRET is not set"))
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors must be returned
// and handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.String("error", fmt.Sprint(err)),
		)
		os.Exit(1)
	}
}
