// Package main is the entry point for the Synaxaire program API server.
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

	"github.com/zapponejosh/synaxaire-program/internal/api"
	"github.com/zapponejosh/synaxaire-program/internal/cache"
	"github.com/zapponejosh/synaxaire-program/internal/config"
	"github.com/zapponejosh/synaxaire-program/internal/database"
	"github.com/zapponejosh/synaxaire-program/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Log startup info
	log.Info("starting synaxaire program API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("data_source", cfg.DataSource),
		slog.String("log_level", cfg.LogLevel),
	)

	if cfg.APIKey == "" && !cfg.IsDevelopment() {
		log.Warn("API_KEY is not set, generation endpoints are open", slog.String("env", cfg.Env))
	}

	// Tables are loaded once and never modified afterwards
	tables, db, err := database.LoadTables(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	var docs cache.Cache
	if cfg.CacheTTL > 0 {
		docs = cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	handlers := api.NewHandlers(tables, docs, db, cfg, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("synaxaire program API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
