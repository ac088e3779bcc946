// Copyright (c) 2026 Bnusa. All rights reserved.

// Command api is the entry point for the Bnusa Kteb Nus HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and, when configured, Redis.
//  4. Run database migrations.
//  5. Wire repositories, services and handlers.
//  6. Start the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yad-anakin/bnusa/internal/api"
	"github.com/yad-anakin/bnusa/internal/ktebnus/book"
	"github.com/yad-anakin/bnusa/internal/ktebnus/chapter"
	"github.com/yad-anakin/bnusa/internal/ktebnus/comment"
	"github.com/yad-anakin/bnusa/internal/ktebnus/like"
	"github.com/yad-anakin/bnusa/internal/platform/config"
	"github.com/yad-anakin/bnusa/internal/platform/constants"
	"github.com/yad-anakin/bnusa/internal/platform/migration"
	pgstore "github.com/yad-anakin/bnusa/internal/platform/postgres"
	"github.com/yad-anakin/bnusa/internal/platform/ratelimit"
	redisstore "github.com/yad-anakin/bnusa/internal/platform/redis"
	"github.com/yad-anakin/bnusa/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("rate_limit_backend", cfg.RateLimitBackend),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()
	}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Identity ───────────────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.AuthPublicKeyPath, cfg.AuthIssuer, cfg.AuthAudience)
	must(log, err, "load token verifier")

	// ── 6. Health ─────────────────────────────────────────────────────────
	deps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		deps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	bookService := book.NewService(book.NewRepository(pool), newUpdateLimiter(cfg, rdb), log)
	chapterService := chapter.NewService(bookService, chapter.NewRepository(pool), log)
	commentService := comment.NewService(bookService, comment.NewRepository(pool), log)
	likeService := like.NewService(bookService, like.NewRepository(pool), log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(bookService),
		Chapter:   chapter.NewHandler(chapterService),
		Comment:   comment.NewHandler(commentService),
		Like:      like.NewHandler(likeService),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the app name and makes it the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// newUpdateLimiter picks the book-update rate limiter backend.
func newUpdateLimiter(cfg *config.Config, rdb *goredis.Client) ratelimit.Limiter {
	if cfg.RateLimitBackend == config.RateLimitBackendRedis && rdb != nil {
		return ratelimit.NewRedis(rdb, constants.RedisPrefixBookUpdate, constants.BookUpdateLimit, constants.BookUpdateWindow)
	}
	return ratelimit.NewMemory(constants.BookUpdateLimit, constants.BookUpdateWindow)
}

// must logs a startup failure and exits. Only used while wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
