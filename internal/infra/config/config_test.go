package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "s3cret")
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, BackendMemory, cfg.Storage.Backend)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, 10, cfg.App.MaxSavedPairs)
	require.Equal(t, "s3cret", cfg.Session.Secret)
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "")
	chdir(t, t.TempDir())

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "session.secret")
}

func TestLoadFromFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://belay.example"]
storage:
  backend: valkey
  valkey:
    addr: "localhost:6379"
session:
  secret: from-file
  tokenTtl: 2h
app:
  version: "1.4.0"
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("APP_MAX_SAVED_PAIRS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, []string{"https://belay.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, BackendValkey, cfg.Storage.Backend)
	require.Equal(t, "localhost:6379", cfg.Storage.Valkey.Addr)
	require.Equal(t, "from-file", cfg.Session.Secret)
	require.Equal(t, 2*time.Hour, cfg.Session.TokenTTL)
	require.Equal(t, "1.4.0", cfg.App.Version)
	require.Equal(t, 5, cfg.App.MaxSavedPairs)
}

func TestEnvOverridesLists(t *testing.T) {
	cfg := defaultConfig()
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STORAGE_BACKEND", " Postgres ")
	applyEnvOverrides(cfg)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, BackendPostgres, cfg.Storage.Backend)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Session.Secret = "secret"
		return cfg
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"address":      func(c *Config) { c.HTTP.Address = "" },
		"metrics path": func(c *Config) { c.HTTP.MetricsPath = "metrics" },
		"rate limit":   func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 },
		"retry":        func(c *Config) { c.HTTP.Retry.MaxAttempts = 0 },
		"backend":      func(c *Config) { c.Storage.Backend = "sqlite" },
		"valkey addr":  func(c *Config) { c.Storage.Backend = BackendValkey },
		"postgres dsn": func(c *Config) { c.Storage.Backend = BackendPostgres },
		"pool sizes":   func(c *Config) { c.Storage.Postgres.MinConns = 8 },
		"token ttl":    func(c *Config) { c.Session.TokenTTL = 0 },
		"saved pairs":  func(c *Config) { c.App.MaxSavedPairs = 0 },
		"negative ttl": func(c *Config) { c.Storage.TTL = -time.Second },
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
