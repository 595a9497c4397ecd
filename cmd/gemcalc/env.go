package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds the defaults every command reads from the environment.
// Flags override them.
type envConfig struct {
	ConfigDir   string `env:"GEMCALC_CONFIG_DIR" envDefault:"configs"`
	Profile     string `env:"GEMCALC_PROFILE"`
	LogMode     string `env:"GEMCALC_LOG_MODE" envDefault:"quiet"`
	Lang        string `env:"GEMCALC_LANG" envDefault:"en"`
	MetricsFile string `env:"GEMCALC_METRICS_FILE"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
