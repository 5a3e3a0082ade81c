// Package config loads the backend configuration from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Port the HTTP API listens on.
	Port int `envconfig:"PORT" default:"8080"`

	// DSN of the sqlite database file.
	DBDSN string `envconfig:"DB_DSN" default:"data/pocketfold.db"`

	// Log format, "json" or "human". Empty selects based on the gin mode.
	LogFormat string `envconfig:"LOG_FORMAT" default:""`

	// Space separated list of allowed CORS origins. Empty disables CORS.
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:""`
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present so that local development does not need
// exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
