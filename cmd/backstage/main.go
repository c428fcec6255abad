package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"backstage/internal/logging"
	"backstage/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobalLogger(logger)

	if cfg.UsesDefaultSecret() {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		logger.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database)
	if db == nil {
		return err
	}
	defer db.Close()
	dbReady := err == nil
	if !dbReady {
		logger.Zerolog().Warn().Err(err).Msg("database unreachable, starting degraded")
	}

	dataStore := store.New(db)
	handler, adminSvc := newHTTPHandler(cfg, db, dataStore, logger)

	if dbReady {
		if err := bootstrapAdmin(ctx, cfg.Admin, adminSvc, logger); err != nil {
			logger.Error(err, "admin bootstrap failed")
		}
	}

	srv := newHTTPServer(cfg.Server, handler)
	serveErr := make(chan error, 1)
	go func() {
		logger.Zerolog().Info().Str("addr", srv.Addr).Msg("backstage API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
