package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds process-level settings read from the environment.
// Command-line flags override these when set explicitly.
type AppConfig struct {
	DBPath      string        `env:"WHISPERS_DB" envDefault:"~/.whispers/whispers.db"`
	Lang        string        `env:"WHISPERS_LANG" envDefault:"en"`
	Difficulty  string        `env:"WHISPERS_DIFFICULTY" envDefault:"normal"`
	LogLevel    string        `env:"WHISPERS_LOG_LEVEL" envDefault:"warn"`
	SSHAddr     string        `env:"WHISPERS_SSH_ADDR" envDefault:":23235"`
	HostKeyPath string        `env:"WHISPERS_HOST_KEY"`
	IdleTimeout time.Duration `env:"WHISPERS_IDLE_TIMEOUT" envDefault:"30m"`
}

// ParseEnv loads AppConfig from environment variables.
func ParseEnv() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
