// Package config loads server settings from RPG_ENCOUNTERS_* environment
// variables. Command line flags override the loaded values.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/redis"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "RPG_ENCOUNTERS_"

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds everything the server needs to start
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"rpg-encounters"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"50051"`

	RedisEndpoints       []string      `env:"REDIS_ENDPOINTS" envSeparator:"," envDefault:"localhost:6379"`
	RedisMasterName      string        `env:"REDIS_MASTER_NAME"`
	RedisPoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RedisConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	RedisMaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	RedisTLS             bool          `env:"REDIS_TLS"`

	CacheTickInterval time.Duration `env:"CACHE_TICK_INTERVAL" envDefault:"60s"`
	CacheExpiration   time.Duration `env:"CACHE_EXPIRATION" envDefault:"1h"`

	// RandomSeed fixes the encounter dice; zero draws a fresh seed at start
	RandomSeed uint64 `env:"RANDOM_SEED"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// OTelEndpoint enables tracing when set, e.g. http://localhost:4318
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateMinItems("redis_endpoints", len(c.RedisEndpoints), 1, vb)
	errors.ValidateNonNegative("redis_pool_size", c.RedisPoolSize, vb)
	errors.ValidateNonNegative("redis_max_retries", c.RedisMaxRetries, vb)
	if c.CacheTickInterval <= 0 {
		vb.Field("cache_tick_interval", "must be positive")
	}
	if c.CacheExpiration < 0 {
		vb.Field("cache_expiration", "must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}
	errors.ValidateEnum("log_format", strings.ToLower(c.LogFormat), []string{LogFormatText, LogFormatJSON}, vb)

	return vb.Build()
}

// SlogLevel converts LogLevel into a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid log level")
	}
	return level, nil
}

// RedisOptions returns the connection pool settings
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		PoolSize:        c.RedisPoolSize,
		MinIdleConns:    c.RedisMinIdleConns,
		ConnMaxIdleTime: c.RedisConnMaxIdleTime,
		MaxRetries:      c.RedisMaxRetries,
		UseTLS:          c.RedisTLS,
	}
}
