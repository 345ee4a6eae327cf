package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/config"
	"github.com/savetree-1/maritime-weather-intelligence/internal/httpserver"
	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
	"github.com/savetree-1/maritime-weather-intelligence/internal/store"
)

func main() {
	// Best-effort: load environment variables from .env-style files in local
	// development. These calls are safe to ignore in production environments.
	config.LoadEnvFiles(config.EnvFiles...)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}

	logDBTarget(cfg)

	// A failed connection does not stop the server: /api/status reports it.
	pool := store.Connect(context.Background(), store.Options{
		Driver:         cfg.DatabaseDriver,
		DSN:            cfg.DatabaseURL,
		Database:       cfg.DatabaseName,
		ConnectTimeout: cfg.ConnectTimeout,
		MaxOpenConns:   cfg.MaxOpenConns,
		MaxIdleConns:   cfg.MaxIdleConns,
	})
	defer func() {
		if err := pool.Close(); err != nil {
			log.WithError(err).Error("failed to close database pool")
		}
	}()

	srv := httpserver.New(cfg, pool)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server exited with error")
		_ = pool.Close()
		os.Exit(1)
	}

	// Let in-flight requests drain before the pool is released.
	<-done
}

func logDBTarget(cfg config.Config) {
	// Avoid logging secrets: only log hostname + database path.
	entry := logging.WithComponentAndFields("db", log.Fields{
		"driver":   cfg.DatabaseDriver,
		"database": cfg.DatabaseName,
	})
	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil || u.Host == "" {
		entry.Info("database configured")
		return
	}
	entry.WithField("host", u.Hostname()).
		WithField("path", strings.TrimPrefix(u.Path, "/")).
		Info("database configured")
}
