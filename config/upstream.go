package config

import (
	"strings"
	"time"
)

const defaultBaseURL = "https://api.215123.cn"

// UpstreamConfig describes how to reach the campus pass service.
type UpstreamConfig struct {
	// BaseURL is the root of the pass service API.
	BaseURL string `env:"BASE_URL" envDefault:"https://api.215123.cn"`

	// Timeout bounds each upstream call. Never unbounded.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`

	// ProfileTimeout bounds the opportunistic profile refresh after a
	// successful pass cycle.
	ProfileTimeout time.Duration `env:"PROFILE_TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to upstream configuration values.
func (c *UpstreamConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.ProfileTimeout <= 0 {
		c.ProfileTimeout = 5 * time.Second
	}
}
