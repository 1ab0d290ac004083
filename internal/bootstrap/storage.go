package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/huihutong/passd/config"
	"github.com/huihutong/passd/internal/store"
)

// OpenStore opens the configured settings backend. The returned closer
// is non-nil and safe to call even for the memory backend.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.StorageSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open settings db: %w", err)
		}
		logger.InfoContext(ctx, "settings store ready", "backend", "sqlite", "path", cfg.SQLitePath)
		return s, s, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		logger.InfoContext(ctx, "settings store ready", "backend", "redis", "addr", cfg.RedisAddr)
		return store.NewRedisWithKey(client, cfg.RedisKey), client, nil

	case config.StorageMemory:
		logger.WarnContext(ctx, "settings store is in-memory; nothing will survive a restart")
		return store.NewMemory(), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
