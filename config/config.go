package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files
// for details on available environment variables:
//   - upstream.go: pass service endpoint configuration
//   - storage.go: settings storage backend configuration
//   - poller.go: refresh loop pacing configuration
//   - http.go: local status server configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (debug logging).
	IsDev bool `env:"DEV" envDefault:"false"`

	// Upstream pass service configuration
	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`

	// Settings storage configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Refresh loop configuration
	Poller PollerConfig `envPrefix:"POLLER_"`

	// Local HTTP server configuration
	HTTP HTTPConfig `envPrefix:"HTTP_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *AppConfig) Sanitize() {
	c.Upstream.Sanitize()
	c.Storage.Sanitize()
	c.Poller.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()
}
