package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds ARCADE_* environment overrides. Values become CLI flag defaults.
type Env struct {
	FPS       int    `env:"ARCADE_FPS" envDefault:"60"`
	Seed      int64  `env:"ARCADE_SEED" envDefault:"0"`
	DB        string `env:"ARCADE_DB" envDefault:"~/.arcade/scores.db"`
	LogFile   string `env:"ARCADE_LOG_FILE" envDefault:"~/.arcade/arcade.log"`
	LogLevel  string `env:"ARCADE_LOG_LEVEL" envDefault:"info"`
	ConfigDir string `env:"ARCADE_CONFIG_DIR" envDefault:"configs"`
}

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: environment: %w", err)
	}
	return e, nil
}

// LoadEnvFrom parses a fixed variable map instead of the process environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("config: environment: %w", err)
	}
	return e, nil
}
