package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the settings record lives.
type StorageBackend string

const (
	// StorageSQLite keeps settings in a local database file (default).
	StorageSQLite StorageBackend = "sqlite"
	// StorageRedis keeps settings in Redis, for hosts with shared
	// infrastructure.
	StorageRedis StorageBackend = "redis"
	// StorageMemory keeps settings in process memory only. Everything
	// is lost on restart; intended for tests and dry runs.
	StorageMemory StorageBackend = "memory"
)

// Valid reports whether the backend name is supported.
func (b StorageBackend) Valid() bool {
	switch b {
	case StorageSQLite, StorageRedis, StorageMemory:
		return true
	default:
		return false
	}
}

// StorageConfig describes the settings storage backend.
type StorageConfig struct {
	// Backend selects sqlite, redis or memory.
	Backend StorageBackend `env:"BACKEND" envDefault:"sqlite"`

	// SQLitePath is the settings database file for the sqlite backend.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"passd.db"`

	// RedisAddr and friends configure the redis backend.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisKey      string `env:"REDIS_KEY" envDefault:"passd:settings"`
}

// Sanitize applies guardrails to storage configuration values.
func (c *StorageConfig) Sanitize() {
	c.Backend = StorageBackend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend == "" {
		c.Backend = StorageSQLite
	}
	c.SQLitePath = strings.TrimSpace(c.SQLitePath)
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	c.RedisKey = strings.TrimSpace(c.RedisKey)
}

// Validate reports configuration errors that Sanitize cannot repair.
func (c *StorageConfig) Validate() error {
	if !c.Backend.Valid() {
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	if c.Backend == StorageSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite backend requires STORAGE_SQLITE_PATH")
	}
	if c.Backend == StorageRedis && c.RedisAddr == "" {
		return fmt.Errorf("redis backend requires STORAGE_REDIS_ADDR")
	}
	return nil
}
