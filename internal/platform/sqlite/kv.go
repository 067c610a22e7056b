package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vocab-study/internal/store"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	selectValue = `SELECT value FROM kv WHERE key = ?`
	upsertValue = `INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	deleteValue = `DELETE FROM kv WHERE key = ?`
)

// KV is a store.KV backed by a SQLite database file.
type KV struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.KV = (*KV)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*KV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "sqlite_kv"))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	version, err := Migrate(ctx, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.DebugContext(ctx, "sqlite store ready", slog.String("path", path), slog.Int64("schema_version", version))

	return &KV{db: db, logger: logger}, nil
}

// Get implements store.KV.
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	return get(ctx, k.db, key)
}

// Set implements store.KV.
func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.SetMany(ctx, store.Entry{Key: key, Value: value})
}

// SetMany implements store.KV. All entries are written in one transaction.
func (k *KV) SetMany(ctx context.Context, entries ...store.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return store.RunInTransaction(ctx, k.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, e := range entries {
			if err := put(ctx, tx, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete implements store.KV.
func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, deleteValue, key); err != nil {
		return fmt.Errorf("%w: delete %q: %v", store.ErrWriteFailed, key, err)
	}
	return nil
}

// Close releases the database handle.
func (k *KV) Close() error {
	return k.db.Close()
}

func get(ctx context.Context, q store.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %q: %v", store.ErrReadFailed, key, err)
	}
	return value, nil
}

func put(ctx context.Context, q store.DBTX, key, value string) error {
	if _, err := q.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("%w: put %q: %v", store.ErrWriteFailed, key, err)
	}
	return nil
}
