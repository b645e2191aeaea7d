/*
main.go - Dashboard server entry point

PURPOSE:
  Serves the bilingual inventory dashboard over HTTP from the SQLite file
  produced by cmd/load. Read-only: it never modifies the inventory table.

STARTUP SEQUENCE:
  1. Parse command-line flags, load .env and environment
  2. Build the zerolog logger
  3. Open the SQLite store
  4. Start the low-stock alert scheduler (unless ALERT_CRON is empty)
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -port    HTTP server port (env APP_PORT, default 8080)
  -db      SQLite database path (env DB_PATH, default nissili_inventory.db)
  -env     .env file to load (default ./.env if present)

ENVIRONMENT:
  LOG_LEVEL     debug | info | warn | error (default info)
  LOG_FORMAT    console | json (default console)
  DEFAULT_LANG  ja | en (default ja)
  ALERT_CRON    cron spec for the alert job (default @hourly, empty disables)
  ALERT_TO      alert recipient
  ALERT_LANG    alert language (default ja)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the alert scheduler
  4. Close database connection

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
  - cmd/load: Populates the database
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nissili/inventory-dashboard/alert"
	"github.com/nissili/inventory-dashboard/api"
	"github.com/nissili/inventory-dashboard/config"
	"github.com/nissili/inventory-dashboard/logger"
	"github.com/nissili/inventory-dashboard/store/sqlite"
)

func main() {
	// Flags
	port := flag.String("port", "", "HTTP server port (overrides APP_PORT)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	envFile := flag.String("env", "", "Path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logger configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize store
	store, err := sqlite.New(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.Store.Path).Msg("failed to initialize database")
	}
	defer store.Close()

	if n, err := store.CountRows(context.Background()); err == nil {
		log.Info().Str("db", store.Path()).Int("rows", n).Msg("inventory database opened")
		if n == 0 {
			log.Warn().Msg("inventory table is empty, run cmd/load first")
		}
	}

	// Alert scheduler
	scheduler := alert.NewScheduler(store, alert.Options{
		Spec: cfg.Alert.CronSpec,
		To:   cfg.Alert.To,
		Lang: cfg.Alert.Lang,
	}, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start alert scheduler")
	}

	// Initialize handler
	handler := api.NewHandler(store)
	handler.DefaultLang = cfg.Server.DefaultLang
	handler.AlertTo = cfg.Alert.To
	if scheduler.Enabled() {
		handler.Alerts = scheduler
	}

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(handler, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("dashboard available at http://localhost:%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	scheduler.Stop()

	log.Info().Msg("server stopped")
}
