package strata

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config configures the SDK assembly.
type Config struct {
	// Service is the name of the instrumented service.
	Service string `envconfig:"STRATA_SERVICE" default:"unknown"`

	// Sampler selects the sampling strategy: always, never, ratio, or
	// parent (parent-based over an always root).
	Sampler string `envconfig:"STRATA_SAMPLER" default:"always"`

	// SamplerRatio is the sampled fraction when Sampler is ratio.
	SamplerRatio float64 `envconfig:"STRATA_SAMPLER_RATIO" default:"1.0"`

	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `envconfig:"STRATA_LOG_LEVEL" default:"info"`

	// LogDev switches the logger to development output.
	LogDev bool `envconfig:"STRATA_LOG_DEV" default:"false"`

	// Metrics enables pipeline self-metrics registration.
	Metrics bool `envconfig:"STRATA_METRICS" default:"true"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("strata: load config: %w", err)
	}
	return cfg, nil
}
