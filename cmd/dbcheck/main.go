// Command dbcheck runs the backend's startup connection and one status check,
// prints the status body and exits non-zero when the database is unusable.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/config"
	"github.com/savetree-1/maritime-weather-intelligence/internal/handlers"
	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
	"github.com/savetree-1/maritime-weather-intelligence/internal/store"
)

func main() {
	config.LoadEnvFiles(config.EnvFiles...)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	// Diagnostics go to stderr so stdout carries only the JSON body.
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	log.SetOutput(os.Stderr)

	os.Exit(run(context.Background(), cfg, os.Stdout))
}

// run performs the check and writes the status body to out. It returns the
// process exit code.
func run(ctx context.Context, cfg config.Config, out io.Writer) int {
	pool := store.Connect(ctx, store.Options{
		Driver:         cfg.DatabaseDriver,
		DSN:            cfg.DatabaseURL,
		Database:       cfg.DatabaseName,
		ConnectTimeout: cfg.ConnectTimeout,
		MaxOpenConns:   1,
		MaxIdleConns:   1,
	})
	defer pool.Close()

	resp, checkErr := handlers.CheckStatus(ctx, pool)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.WithError(err).Error("failed to encode status")
		return 1
	}

	if checkErr != nil {
		return 1
	}
	return 0
}
