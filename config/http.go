package config

import "strings"

// HTTPConfig contains the local status server configuration.
type HTTPConfig struct {
	// Enabled turns the local status server on.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// Addr is the address to bind the status server to. Loopback by
	// default; the pass grants physical access, do not expose it.
	Addr string `env:"ADDR" envDefault:"127.0.0.1:7535"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Enabled = false
	}
}
