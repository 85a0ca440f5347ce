// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MinJWTSecretLen is the shortest HMAC-SHA256 signing key accepted.
const MinJWTSecretLen = 32

// Config holds the server settings. JWT_SECRET is the only required variable.
type Config struct {
	Port            string        `env:"PORT" env-default:"8080"`
	DatabasePath    string        `env:"DATABASE_PATH" env-default:"social.db"`
	UploadDir       string        `env:"UPLOAD_DIR" env-default:"uploads"`
	JWTSecret       string        `env:"JWT_SECRET" env-required:"true"`
	CookieSecure    bool          `env:"COOKIE_SECURE" env-default:"true"`
	BcryptCost      int           `env:"BCRYPT_COST" env-default:"12"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads the environment and checks the values that have bounds.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLen)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
