// Package config loads process configuration from the environment with
// go-envconfig (§6.4).
package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// Config is the root configuration struct. Nested structs group settings
// by the subsystem they belong to.
type Config struct {
	BindAddress string `env:"BIND_ADDRESS, default=:8080"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`

	Auth   AuthConfig
	Ledger LedgerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

// AuthConfig carries the token-signing secret and the lifetimes/sweep
// cadence of the two-tier credential system (§4.4-4.5).
type AuthConfig struct {
	TokenSigningSecret   string        `env:"TOKEN_SIGNING_SECRET, required"`
	AccessTokenLifetime  time.Duration `env:"ACCESS_TOKEN_LIFETIME, default=15m"`
	RefreshTokenLifetime time.Duration `env:"REFRESH_TOKEN_LIFETIME, default=168h"`
	SweepInterval        time.Duration `env:"SWEEP_INTERVAL, default=1h"`
}

// LedgerConfig selects the ledger backend (§4.3): "mock" runs entirely
// in-memory via ledger.FakeTransport, any other value is treated as a
// Horizon-class HTTP endpoint.
type LedgerConfig struct {
	Network string `env:"LEDGER_NETWORK, default=mock"`
}

// MongoConfig carries the durable store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=nda_vault"`
}

// RedisConfig carries the read-through cache connection settings.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
