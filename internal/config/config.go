// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/packvault/collection-api/internal/errors"
)

// Config holds the service configuration
type Config struct {
	// HTTPAddr is the listen address for the API server.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// RedisAddr is the address of the Redis instance backing persistence.
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	// RedisUseTLS enables TLS on the Redis connection.
	RedisUseTLS bool `env:"REDIS_USE_TLS" envDefault:"false"`
	// RedisInsecureSkipTLSVerify disables certificate verification, for
	// self-signed certs in development.
	RedisInsecureSkipTLSVerify bool `env:"REDIS_INSECURE_SKIP_TLS_VERIFY" envDefault:"false"`

	// CatalogBaseURL is the root of the upstream creature catalog API.
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"https://digi-api.com/api/v1"`
	// CatalogRequestsPerSecond caps outbound catalog calls.
	CatalogRequestsPerSecond float64 `env:"CATALOG_RPS" envDefault:"10"`
	// CatalogBurst is the catalog rate limiter burst size.
	CatalogBurst int `env:"CATALOG_BURST" envDefault:"5"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("HTTPAddr", cfg.HTTPAddr, vb)
	errors.ValidateRequired("RedisAddr", cfg.RedisAddr, vb)
	errors.ValidateRequired("CatalogBaseURL", cfg.CatalogBaseURL, vb)
	if cfg.CatalogRequestsPerSecond <= 0 {
		vb.InvalidField("CatalogRequestsPerSecond", "must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		vb.InvalidField("ShutdownTimeout", "must be positive")
	}
	return vb.Build()
}
