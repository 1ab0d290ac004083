package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parseConfig(t)

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "https://api.215123.cn", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "passd.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.Poller.RetryBackoff)
	assert.Equal(t, 60*time.Second, cfg.Poller.BackoffCap)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, "127.0.0.1:7535", cfg.HTTP.Addr)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
	require.NoError(t, cfg.Storage.Validate())
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://pass.example.test/")
	t.Setenv("UPSTREAM_TIMEOUT", "10s")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("STORAGE_REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")

	cfg := parseConfig(t)

	assert.Equal(t, "https://pass.example.test", cfg.Upstream.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend, "backend name lowercased")
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTP.Addr)
	require.NoError(t, cfg.Storage.Validate())
}

func TestUpstreamConfig_SanitizeGuardrails(t *testing.T) {
	c := UpstreamConfig{BaseURL: "   ", Timeout: -time.Second}
	c.Sanitize()

	assert.Equal(t, "https://api.215123.cn", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 5*time.Second, c.ProfileTimeout)
}

func TestPollerConfig_SanitizeEnforcesFloor(t *testing.T) {
	c := PollerConfig{RetryBackoff: time.Second, BackoffCap: 500 * time.Millisecond}
	c.Sanitize()

	assert.Equal(t, 5*time.Second, c.RetryBackoff)
	assert.Equal(t, 60*time.Second, c.BackoffCap)
}

func TestStorageConfig_Validate(t *testing.T) {
	c := StorageConfig{Backend: "postgres"}
	c.Sanitize()
	require.Error(t, c.Validate())

	c = StorageConfig{Backend: "sqlite", SQLitePath: "  "}
	c.Sanitize()
	require.Error(t, c.Validate())

	c = StorageConfig{Backend: "memory"}
	c.Sanitize()
	require.NoError(t, c.Validate())
}

func TestHTTPConfig_EmptyAddrDisables(t *testing.T) {
	c := HTTPConfig{Enabled: true, Addr: "   "}
	c.Sanitize()
	assert.False(t, c.Enabled)
}

func TestObservabilityMetricsConfig_EmptyAddressDisables(t *testing.T) {
	c := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " "}
	c.Sanitize()
	assert.False(t, c.IsEnabled())
}
