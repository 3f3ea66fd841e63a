// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/aretw0/gestalt/internal/runtime"
	"github.com/caarlos0/env/v11"
)

// Server holds the settings of `gestalt serve`.
type Server struct {
	Addr          string `env:"GESTALT_ADDR" envDefault:":8080"`
	BindingsPath  string `env:"GESTALT_BINDINGS"`
	LogLevel      string `env:"GESTALT_LOG_LEVEL" envDefault:"info"`
	RedisAddr     string `env:"GESTALT_REDIS_ADDR"`
	RedisStream   string `env:"GESTALT_REDIS_STREAM" envDefault:"gestalt:events"`
	RedisMaxLen   int64  `env:"GESTALT_REDIS_MAXLEN" envDefault:"10000"`
	EventBuffer   int    `env:"GESTALT_EVENT_BUFFER" envDefault:"1024"`
	EventOverflow string `env:"GESTALT_EVENT_OVERFLOW" envDefault:"drop-oldest"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads and validates the server settings.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that env tags cannot express.
func (s Server) Validate() error {
	if s.EventBuffer < 0 {
		return fmt.Errorf("GESTALT_EVENT_BUFFER must not be negative, got %d", s.EventBuffer)
	}
	if s.RedisMaxLen < 0 {
		return fmt.Errorf("GESTALT_REDIS_MAXLEN must not be negative, got %d", s.RedisMaxLen)
	}
	if _, err := runtime.ParseOverflowPolicy(s.EventOverflow); err != nil {
		return fmt.Errorf("GESTALT_EVENT_OVERFLOW: %w", err)
	}
	return nil
}
