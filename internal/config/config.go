package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "supersecretkey"

type Config struct {
	Env            string        `yaml:"env"`
	Addr           string        `yaml:"addr"`
	DatabaseDriver string        `yaml:"database_driver"`
	DatabaseDSN    string        `yaml:"database_dsn"`
	AutoMigrate    bool          `yaml:"auto_migrate"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	BcryptCost     int           `yaml:"bcrypt_cost"`
	APITimeout     time.Duration `yaml:"timeout"`
	LogLevel       string        `yaml:"log_level"`
}

// LoadConfig builds a Config from environment defaults, then overlays the
// YAML file at path when one is given.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Env:            getEnv("QUICKBIDS_ENV", "development"),
		Addr:           getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		DatabaseDriver: getEnv("QUICKBIDS_DB_DRIVER", "postgres"),
		DatabaseDSN:    getEnv("POSTGRES_CONN", ""),
		AutoMigrate:    getEnv("QUICKBIDS_AUTO_MIGRATE", "true") == "true",
		JWTSecret:      getEnv("QUICKBIDS_JWT_SECRET", defaultJWTSecret),
		TokenDuration:  24 * time.Hour,
		BcryptCost:     10,
		APITimeout:     15 * time.Second,
		LogLevel:       getEnv("QUICKBIDS_LOG_LEVEL", "info"),
	}
	if dsn := os.Getenv("QUICKBIDS_DB_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database_driver must be postgres or sqlite, got %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database_dsn is required (POSTGRES_CONN or QUICKBIDS_DB_DSN)"))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == defaultJWTSecret && c.Env != "development" {
		errs = append(errs, errors.New("jwt_secret must be changed outside development"))
	}
	if c.TokenDuration < 0 {
		errs = append(errs, errors.New("token_duration must not be negative"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
