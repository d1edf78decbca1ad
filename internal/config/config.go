package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by Load.
const (
	EnvDBPath   = "LINKVAULT_DB_PATH"
	EnvLogLevel = "LINKVAULT_LOG_LEVEL"
	EnvName     = "LINKVAULT_ENV"
)

type Config struct {
	// DBPath is the SQLite file holding the key-value store.
	DBPath   string
	LogLevel string
	Env      string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Variables already set in the
// environment take precedence over the file.
func Load() (*Config, error) {
	// a missing .env is the normal case
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:   getEnv(EnvDBPath, ""),
		LogLevel: strings.ToLower(getEnv(EnvLogLevel, "warn")),
		Env:      getEnv(EnvName, "production"),
	}

	if cfg.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve default db path: %w", err)
		}
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may have come from flags or the environment.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s must be one of debug, info, warn, error (got %q)", EnvLogLevel, c.LogLevel)
	}
	if c.Env != "production" && c.Env != "development" {
		return fmt.Errorf("%s must be production or development (got %q)", EnvName, c.Env)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

// DefaultDBPath returns the default database path using the platform's config directory.
func DefaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "linkvault", "linkvault.db"), nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
