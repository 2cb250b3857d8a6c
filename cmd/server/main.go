package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/example-crud-service/internal/app"
	"github.com/maxviazov/example-crud-service/internal/config"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/maxviazov/example-crud-service/internal/handler"
	"github.com/maxviazov/example-crud-service/internal/logger"
	"github.com/maxviazov/example-crud-service/internal/middleware"
	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/maxviazov/example-crud-service/internal/repository/bunstore"
	"github.com/maxviazov/example-crud-service/internal/repository/postgres"
	"github.com/maxviazov/example-crud-service/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	if cfg.Storage.Migrate {
		if err := storage.MigrateUp(cfg.Storage.MigrationDSN(), cfg.Storage.MigrationsDir); err != nil {
			appLogger.Fatal().Err(err).Msg("migrations failed")
		}
	}

	var (
		repo   repository.ExampleRepository
		pinger repository.Pinger
	)
	switch cfg.Storage.Backend {
	case "pgx":
		pool, err := storage.NewPgxPool(ctx, &cfg.Storage, &appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer pool.Close()
		repo = postgres.NewExampleRepository(pool)
		pinger = postgres.NewPinger(pool)
	case "bun":
		db, err := storage.OpenBun(&cfg.Storage, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("bun storage failed")
		}
		defer func() { _ = db.Close() }()
		repo = bunstore.NewExampleRepository(db)
		pinger = bunstore.NewPinger(db)
	default:
		appLogger.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}

	v := dispatch.NewValidator()
	if err := app.RegisterRules(v); err != nil {
		appLogger.Fatal().Err(err).Msg("rule registration failed")
	}
	d := dispatch.New(v, appLogger)
	app.RegisterHandlers(d, repo, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(appLogger), middleware.Translator(appLogger))
	handler.Register(r, d, pinger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", cfg.Server.Addr).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
