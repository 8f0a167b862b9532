package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (prefix match when it ends with "/")
	Method string        // HTTP method; empty matches any method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration with the default endpoint tiers.
func NewConfig(enabled bool, defaultLimit int, defaultWindow time.Duration, whitelist []string) *Config {
	cfg := &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool, len(whitelist)),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
	for _, ip := range whitelist {
		if ip != "" {
			cfg.Whitelist[ip] = true
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model-backed requests
		{Path: "/report/stream", Method: http.MethodPost, Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/analyses", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/interview/start", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/interview/evaluate", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/recommendations", Method: http.MethodGet, Limit: 60, Window: time.Hour, Burst: 10},

		// Tier 2: session creation
		{Path: "/sessions", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 10},

		// Tier 3: interview edits
		{Path: "/interview/", Method: "", Limit: 300, Window: time.Minute, Burst: 30},

		// Everything else uses the default limit; /health and /metrics are unlimited
	}
}
