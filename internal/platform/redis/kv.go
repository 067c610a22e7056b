// Package redis implements store.KV on a Redis server, for profiles whose
// study data lives on a home server instead of the device.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/vocab-study/internal/store"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// KV is a store.KV backed by plain Redis strings. Keys never expire.
type KV struct {
	client goredis.UniversalClient
	logger *slog.Logger
}

var _ store.KV = (*KV)(nil)

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*KV, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return New(client, logger), nil
}

// New wraps an existing client.
func New(client goredis.UniversalClient, logger *slog.Logger) *KV {
	if logger == nil {
		logger = slog.Default()
	}
	return &KV{client: client, logger: logger.With(slog.String("component", "redis_kv"))}
}

// Get implements store.KV.
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	v, err := k.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %q: %v", store.ErrReadFailed, key, err)
	}
	return v, nil
}

// Set implements store.KV.
func (k *KV) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %v", store.ErrWriteFailed, key, err)
	}
	return nil
}

// SetMany implements store.KV with a single MSET, which Redis applies atomically.
func (k *KV) SetMany(ctx context.Context, entries ...store.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	pairs := make([]any, 0, 2*len(entries))
	for _, e := range entries {
		pairs = append(pairs, e.Key, e.Value)
	}
	if err := k.client.MSet(ctx, pairs...).Err(); err != nil {
		k.logger.ErrorContext(ctx, "mset failed", slog.Int("keys", len(entries)), slog.String("error", err.Error()))
		return fmt.Errorf("%w: mset: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// Delete implements store.KV.
func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %q: %v", store.ErrWriteFailed, key, err)
	}
	return nil
}

// Close closes the underlying client.
func (k *KV) Close() error {
	return k.client.Close()
}
