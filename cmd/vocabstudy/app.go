package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/phrazzld/vocab-study/internal/catalog"
	"github.com/phrazzld/vocab-study/internal/config"
	"github.com/phrazzld/vocab-study/internal/events"
	"github.com/phrazzld/vocab-study/internal/importer"
	"github.com/phrazzld/vocab-study/internal/platform/metrics"
	"github.com/phrazzld/vocab-study/internal/platform/redis"
	"github.com/phrazzld/vocab-study/internal/platform/sqlite"
	"github.com/phrazzld/vocab-study/internal/service"
	"github.com/phrazzld/vocab-study/internal/store"
)

// application holds the wired dependencies and releases them on cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv      store.KV
	closers []io.Closer

	metrics *metrics.Metrics
	study   service.StudyService
}

// newApplication opens storage, builds the controller and runs its startup
// load. A feed that cannot be reached is not an error.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	reg prometheus.Registerer,
) (*application, error) {
	app := &application{config: cfg, logger: logger}

	kv, closer, err := openKV(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	app.kv = kv
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	app.metrics = metrics.New(reg)
	records := store.NewDeckStore(kv, cfg.Storage.KeyPrefix, logger)

	feed := catalog.NewHTTPFeed(cfg.Feed.URL, time.Duration(cfg.Feed.TimeoutSeconds)*time.Second, logger)
	cat, err := catalog.New(feed, records, logger, catalog.WithMetrics(app.metrics))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create deck catalog: %w", err)
	}

	emitter := events.NewInMemoryEmitter(logger)
	imp, err := importer.NewManager(records, emitter, app.metrics, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create import manager: %w", err)
	}

	app.study, err = service.NewStudyService(cat, imp, cfg.Study.Shuffle, logger,
		service.WithMetrics(app.metrics))
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}
	emitter.Subscribe(events.TypeImportedDecksChanged, app.study)

	view := app.study.Startup(ctx)
	logger.Info("deck catalog loaded",
		slog.String("provenance", string(view.Status.Provenance)),
		slog.Int("decks", len(view.Decks)),
		slog.Int("imported", view.Status.ImportedCount))

	return app, nil
}

// openKV opens the configured backend. The returned closer is nil for the
// memory backend.
func openKV(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.KV, io.Closer, error) {
	switch cfg.Backend {
	case "memory":
		logger.Warn("using in-memory storage; imported decks are lost on exit")
		return store.NewMemoryKV(), nil, nil
	case "sqlite":
		kv, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return kv, kv, nil
	case "redis":
		kv, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis storage: %w", err)
		}
		return kv, kv, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// cleanup releases storage. It is safe to call more than once.
func (app *application) cleanup() {
	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			app.logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}
	app.closers = nil
}
