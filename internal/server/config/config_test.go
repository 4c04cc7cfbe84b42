package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	c := &Config{}
	c.LoadDefaults()
	c.Catalog.APIKey = "tmdb-key"
	c.TextGen.APIKey = "gemini-key"
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "pgx", c.Database.Driver)
	assert.Equal(t, "https://api.themoviedb.org/3", c.Catalog.BaseURL)
	assert.Equal(t, "models/gemini-2.5-flash-preview-05-20", c.TextGen.Model)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORS.AllowedOrigins)
	assert.Equal(t, 6*time.Hour, c.Redis.TTL)
	assert.Empty(t, c.Catalog.APIKey)
	assert.Empty(t, c.TextGen.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		missing bool
		wantErr bool
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "no text generator key", mutate: func(c *Config) { c.TextGen.APIKey = "" }, missing: true, wantErr: true},
		{name: "no text generator url", mutate: func(c *Config) { c.TextGen.APIURL = "" }, missing: true, wantErr: true},
		{name: "no catalog key", mutate: func(c *Config) { c.Catalog.APIKey = "" }, missing: true, wantErr: true},
		{name: "no dsn", mutate: func(c *Config) { c.Database.DSN = "" }, missing: true, wantErr: true},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Catalog.MaxConcurrency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.missing, errors.Is(err, common.ErrorMissingConfig))
		})
	}
}

func TestLoad_MissingTextGeneratorKeyAborts(t *testing.T) {
	t.Setenv("DRAMAHUB_CATALOG_API_KEY", "tmdb")

	_, err := load(nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorMissingConfig)
	assert.Contains(t, err.Error(), "Gemini__ApiKey")
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("DRAMAHUB_CATALOG_API_KEY", "tmdb")
	t.Setenv("Gemini__ApiKey", "gem")
	t.Setenv("Gemini__ApiUrl", "http://gemini.local")
	t.Setenv("DRAMAHUB_CATALOG_TIMEOUT", "3s")
	t.Setenv("DRAMAHUB_CATALOG_MAX_CONCURRENCY", "2")
	t.Setenv("DRAMAHUB_CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "tmdb", cfg.Catalog.APIKey)
	assert.Equal(t, "gem", cfg.TextGen.APIKey)
	assert.Equal(t, "http://gemini.local", cfg.TextGen.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 2, cfg.Catalog.MaxConcurrency)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoad_ConfigFileThenEnvThenFlags(t *testing.T) {
	path := writeFile(t, "dramahub.yaml", `
http_addr: ":9000"
grpc_addr: ":9001"
database:
  driver: sqlite
  dsn: "file:from-file.db"
catalog:
  api_key: from-file
  timeout: 2s
textgen:
  api_key: from-file
log:
  level: debug
`)
	t.Setenv("DRAMAHUB_TEXTGEN_API_KEY", "from-env")

	cfg, err := load([]string{"-c", path, "-a", ":7000"}, "")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr, "flag wins over file")
	assert.Equal(t, ":9001", cfg.GRPCAddr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:from-file.db", cfg.Database.DSN)
	assert.Equal(t, "from-file", cfg.Catalog.APIKey)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "from-env", cfg.TextGen.APIKey, "env wins over file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.Catalog.BaseURL, "untouched defaults survive")
}

func TestLoad_JSONConfigFile(t *testing.T) {
	path := writeFile(t, "dramahub.json", `{"catalog":{"api_key":"k1"},"textgen":{"api_key":"k2"},"redis":{"url":"redis://localhost:6379/0","ttl":"1h"}}`)

	cfg, err := load([]string{"-config", path}, "")
	require.NoError(t, err)
	assert.Equal(t, "k1", cfg.Catalog.APIKey)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := load([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}, "")
	require.ErrorContains(t, err, "failed to load config file")
}

func TestLoad_DotEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "Gemini__ApiKey=dot-gem\nTMDB_API_KEY=dot-tmdb\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("Gemini__ApiKey")
		_ = os.Unsetenv("TMDB_API_KEY")
	})

	cfg, err := load(nil, envFile)
	require.NoError(t, err)
	assert.Equal(t, "dot-gem", cfg.TextGen.APIKey)
	assert.Equal(t, "dot-tmdb", cfg.Catalog.APIKey)
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	require.NoError(t, loadDotEnv(""))
}
