package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_fileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[capacity_api]
url = "http://capacity:3000/api"
timeout = 5

[schedule]
timezone = "Asia/Bangkok"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://capacity:3000/api", cfg.CapacityAPI.URL)
	assert.Equal(t, 5, cfg.CapacityAPI.Timeout)
	assert.Equal(t, "Asia/Bangkok", cfg.Schedule.Timezone)
	assert.Equal(t, "2", cfg.Schedule.CatalogVersion)
	assert.True(t, cfg.Cache.Enabled)
}

func Test_Load_envOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[capacity_api]
url = "http://from-file"
`)
	t.Setenv("CAPACITY_API_URL", "http://from-env")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env", cfg.CapacityAPI.URL)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func Test_Load_missingFileUsesEnv(t *testing.T) {
	t.Setenv("CAPACITY_API_URL", "http://only-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://only-env", cfg.CapacityAPI.URL)
}

func Test_Load_invalidToml(t *testing.T) {
	path := writeConfig(t, `[server`)

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Config_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "bad timezone", modify: func(c *Config) { c.Schedule.Timezone = "UTC+7" }},
		{name: "no capacity url", modify: func(c *Config) { c.CapacityAPI.URL = "" }},
		{name: "zero timeout", modify: func(c *Config) { c.CapacityAPI.Timeout = 0 }},
		{name: "rabbit without url", modify: func(c *Config) { c.RabbitMQ.Enabled = true }},
		{name: "cache without size", modify: func(c *Config) { c.Cache.Size = 0 }},
		{name: "rate limit without burst", modify: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }},
		{name: "zero session retention", modify: func(c *Config) { c.Sessions.Retention = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.CapacityAPI.URL = "http://capacity"
			require.NoError(t, cfg.Validate())

			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func Test_DatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "h", Port: 5433, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
