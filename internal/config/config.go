// Package config defines the tip service configuration and its loader.
//
// Values are layered from defaults, an optional YAML file and TIPPER_*
// environment variables, in that order of precedence.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Defuzzifier names the defuzzification formula: centroid or legacy.
	Defuzzifier string `koanf:"defuzzifier"`
}

// New returns a Config populated with defaults. The context is reserved for
// loaders that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Addr:        ":9080",
		Defuzzifier: "centroid",
	}
}
