package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quickbids/internal/config"

	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		Env:            "production",
		Addr:           ":8080",
		DatabaseDriver: "postgres",
		DatabaseDSN:    "postgres://localhost/quickbids",
		JWTSecret:      "strongsecret",
		TokenDuration:  time.Hour,
		APITimeout:     5 * time.Second,
	}
}

func TestLoadConfig_EnvDefaults(t *testing.T) {
	t.Setenv("POSTGRES_CONN", "postgres://env/quickbids")
	t.Setenv("SERVER_ADDRESS", ":9999")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "postgres://env/quickbids", cfg.DatabaseDSN)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 24*time.Hour, cfg.TokenDuration)
	require.True(t, cfg.AutoMigrate)
}

func TestLoadConfig_YAMLOverridesEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
addr: ":7070"
database_driver: sqlite
database_dsn: "file:quickbids.db"
token_duration: 2h
timeout: 3s
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Addr)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "file:quickbids.db", cfg.DatabaseDSN)
	require.Equal(t, 2*time.Hour, cfg.TokenDuration)
	require.Equal(t, 3*time.Second, cfg.APITimeout)
	require.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"unknown driver", func(c *config.Config) { c.DatabaseDriver = "mysql" }},
		{"missing dsn", func(c *config.Config) { c.DatabaseDSN = "" }},
		{"missing addr", func(c *config.Config) { c.Addr = "" }},
		{"default secret in production", func(c *config.Config) { c.JWTSecret = "supersecretkey" }},
		{"empty secret", func(c *config.Config) { c.JWTSecret = "" }},
		{"negative token duration", func(c *config.Config) { c.TokenDuration = -time.Second }},
		{"zero timeout", func(c *config.Config) { c.APITimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_DefaultSecretAllowedInDevelopment(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "development"
	cfg.JWTSecret = "supersecretkey"
	require.NoError(t, cfg.Validate())
}
