package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "passd:settings"

// Redis persists the settings record as a JSON blob under a single key.
// Useful when the agent runs on a host with shared infrastructure; the
// record carries no TTL since the identity token is durable.
type Redis struct {
	client redis.UniversalClient
	key    string
	mu     sync.Mutex
}

// NewRedis creates a Redis-backed settings store.
func NewRedis(client redis.UniversalClient) *Redis {
	return NewRedisWithKey(client, defaultRedisKey)
}

// NewRedisWithKey creates a Redis settings store with a custom key,
// allowing several agents to share one Redis.
func NewRedisWithKey(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = defaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(ctx)
}

func (r *Redis) Save(ctx context.Context, settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx, settings)
}

func (r *Redis) Update(ctx context.Context, fn func(*Settings) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(&settings); err != nil {
		return err
	}
	return r.saveLocked(ctx, settings)
}

func (r *Redis) loadLocked(ctx context.Context) (Settings, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		settings := DefaultSettings()
		if saveErr := r.saveLocked(ctx, settings); saveErr != nil {
			return Settings{}, saveErr
		}
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("redis get settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings record: %w", err)
	}
	settings.Preferences.Normalize()
	return settings, nil
}

func (r *Redis) saveLocked(ctx context.Context, settings Settings) error {
	settings.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings record: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set settings: %w", err)
	}
	return nil
}
