package config

import (
	"fmt"
	"time"
)

// minSecretLength is the shortest accepted HMAC signing secret.
const minSecretLength = 16

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// JWT returns the session token configuration.
func (c *Config) JWT() *JWTConfig {
	return &JWTConfig{Secret: c.Auth.JWTSecret, TTL: c.Auth.TokenTTL}
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("auth.jwt_secret cannot be empty")
	}
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters", minSecretLength)
	}
	if c.TTL < time.Minute {
		return fmt.Errorf("auth.token_ttl must be at least 1 minute, got: %s", c.TTL)
	}
	return nil
}
