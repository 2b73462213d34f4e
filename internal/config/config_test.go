package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxSizeBytes)
	assert.Contains(t, cfg.Upload.AllowedExtensions, ".xlsx")
	require.NoError(t, cfg.validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KHAZNA_SERVER_PORT", "9090")
	t.Setenv("KHAZNA_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"no origins", func(c *Config) { c.Security.AllowedOrigins = nil }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"zero upload size", func(c *Config) { c.Upload.MaxSizeBytes = 0 }},
		{"extension without dot", func(c *Config) { c.Upload.AllowedExtensions = []string{"xlsx"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 8181\nlogging:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := loadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestMergeConfigs_EnvPrecedence(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 8181
	fileCfg.Logging.Level = "warn"

	envCfg := Config{}
	envCfg.Server.Port = 9090

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, "warn", merged.Logging.Level)
}
