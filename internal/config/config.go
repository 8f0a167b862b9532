// Package config loads service configuration from defaults, an optional config file, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. READINESS_LLM_PROVIDER.
const EnvPrefix = "READINESS"

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LLMConfig selects the generation provider and its models.
type LLMConfig struct {
	Provider string            `mapstructure:"provider"`
	APIKey   string            `mapstructure:"api_key"`
	Models   map[string]string `mapstructure:"models"`
	Timeout  time.Duration     `mapstructure:"timeout"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend     string        `mapstructure:"backend"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
	DatabaseURL string        `mapstructure:"database_url"`
}

// AuthConfig configures session tokens and the mock sign-in.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	SignInLatency time.Duration `mapstructure:"sign_in_latency"`

	// GeneratedSecret is set when no secret was configured and a random one was used.
	GeneratedSecret bool `mapstructure:"-"`
}

// SessionConfig configures per-session state retention.
type SessionConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig configures request throttling.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
	Whitelist     []string      `mapstructure:"whitelist"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.models.lite", "")
	v.SetDefault("llm.models.standard", "")
	v.SetDefault("llm.models.advanced", "")
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("store.backend", StoreMemory)
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_ttl", 24*time.Hour)
	v.SetDefault("store.database_url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.sign_in_latency", 800*time.Millisecond)
	v.SetDefault("session.idle_ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
}

// Load reads configuration. path names an optional YAML file; when empty, config.yaml is
// looked up in ./configs and the working directory. A .env file is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Provider keys are accepted under their conventional names as well.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerAPIKey(cfg.LLM.Provider)
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = uuid.NewString() + uuid.NewString()
		cfg.Auth.GeneratedSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func providerAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	default:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("API_KEY")
	}
}

// Validate checks that the configuration has valid values.
// The API key is not required here since only model-backed commands need it.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("config error: unknown 'llm.provider' %q", c.LLM.Provider)
	}
	for tier := range c.LLM.Models {
		switch tier {
		case "lite", "standard", "advanced":
		default:
			return fmt.Errorf("config error: unknown model tier %q in 'llm.models'", tier)
		}
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be positive")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("config error: 'store.redis_addr' is required for the redis backend")
		}
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'store.database_url' is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown 'store.backend' %q", c.Store.Backend)
	}

	if err := c.JWT().normalize(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Auth.SignInLatency < 0 {
		return fmt.Errorf("config error: 'auth.sign_in_latency' must be non-negative")
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("config error: 'session.idle_ttl' must be non-negative")
	}

	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit <= 0 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: 'rate_limit.default_limit' and 'rate_limit.default_window' must be positive")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}
	return nil
}
