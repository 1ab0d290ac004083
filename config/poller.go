package config

import "time"

// PollerConfig controls refresh-loop pacing. The user-facing refresh
// interval itself is a persisted preference, not environment config;
// only the failure pacing lives here.
type PollerConfig struct {
	// RetryBackoff is the fast-retry floor after a transient failure.
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" envDefault:"5s"`

	// BackoffCap bounds backoff growth under repeated failure.
	BackoffCap time.Duration `env:"BACKOFF_CAP" envDefault:"60s"`
}

// Sanitize applies guardrails to poller configuration values.
func (c *PollerConfig) Sanitize() {
	// The floor protects the upstream; never allow faster retries.
	if c.RetryBackoff < 5*time.Second {
		c.RetryBackoff = 5 * time.Second
	}
	if c.BackoffCap < c.RetryBackoff {
		c.BackoffCap = 60 * time.Second
	}
}
