package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/careerpages/api"
	dbfs "github.com/garnizeh/careerpages/db"
	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/internal/render"
	"github.com/garnizeh/careerpages/internal/repository/sqlstore"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/joho/godotenv"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("err", err))
	os.Exit(1)
}

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// a missing .env is fine; the environment may be set another way
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fatal(logger, "failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(logger, "invalid config", err)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting careers server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	// Open database connection
	conn, err := db.Open(ctx, db.Dialect(cfg.Database.Driver), cfg.Database.DSN, &db.Options{MaxOpenConns: cfg.Database.MaxOpenConns})
	if err != nil {
		fatal(logger, "failed to open DB", err)
	}
	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
			fatal(logger, "failed to migrate DB", err)
		}
	}

	store := sqlstore.New(conn, logger)
	hasher := auth.NewHasher(cfg.BcryptCost)
	schemas, err := sections.NewLoader()
	if err != nil {
		fatal(logger, "failed to load section schemas", err)
	}
	pages, err := render.New()
	if err != nil {
		fatal(logger, "failed to parse templates", err)
	}

	svc := careers.New(store, hasher, schemas, logger)
	issuer := auth.NewIssuer(store, store, hasher, cfg.JWTSecret, cfg.TokenDuration)

	handler := api.SetupRoutes(cfg, version, buildTime, svc, issuer, pages)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(logger, "server failed to start", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}

	// Close database connection
	if err := conn.Close(); err != nil {
		logger.Error("error closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}
