package config

import (
	"github.com/caarlos0/env/v11"
)

// loadFromEnv overrides configuration with environment variables named by the
// env tags. Unset variables leave the file or default value in place.
func loadFromEnv(config *Config) error {
	return env.Parse(config)
}
