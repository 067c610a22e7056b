// Package main runs the vocab-study server: the deck catalog, study sessions
// and imported-deck management behind a loopback JSON API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/phrazzld/vocab-study/internal/config"
	"github.com/phrazzld/vocab-study/internal/platform/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("vocab-study: %v", err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("vocabstudy", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "path to a YAML config file")
	envFile := flags.String("env-file", ".env", "dotenv file loaded before reading configuration")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", *envFile, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.String("feed_url", cfg.Feed.URL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.serve(ctx, app.setupRouter(prometheus.DefaultGatherer))
}
