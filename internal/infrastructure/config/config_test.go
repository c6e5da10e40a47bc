package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Gemini.Model)
	assert.Equal(t, time.Hour, cfg.AI.CacheTTL)
	assert.True(t, cfg.AI.OfflineFallback)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  log_level: debug
server:
  port: 9000
ai:
  provider: ollama
  ollama:
    model: mistral
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("ALCHEMORSEL_AI_GEMINI_API_KEY", "from-env")
	t.Setenv("ALCHEMORSEL_CACHE_DRIVER", "redis")

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "mistral", cfg.AI.Ollama.Model)
	assert.Equal(t, "from-env", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "redis", cfg.Cache.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := NewLoader("").Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"BadPort", func(c *Config) { c.Server.Port = 0 }},
		{"UnknownDriver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"UnknownCache", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"UnknownProvider", func(c *Config) { c.AI.Provider = "openai" }},
		{"UnknownFallback", func(c *Config) { c.AI.FallbackProvider = "openai" }},
		{"ProductionWithoutSecret", func(c *Config) { c.App.Environment = "production"; c.Auth.JWTSecret = "" }},
		{"RateLimitWithoutBudget", func(c *Config) { c.RateLimit.RequestsPerMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"}}
	assert.Equal(t, "test.db", cfg.GetDSN())

	cfg.Database = DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Username: "u", Password: "p", Database: "recipes", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=recipes sslmode=disable", cfg.GetDSN())
}
