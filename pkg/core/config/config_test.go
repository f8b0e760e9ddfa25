package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", string(result))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "warn", cfg.General.LogLevel)
	assert.Equal(t, "text", cfg.General.LogFormat)
	assert.Equal(t, 64*1024, cfg.Engine.MaxInputLength)
	assert.Equal(t, 10000, cfg.Engine.MaxDepth)
	assert.Equal(t, 256, cfg.Engine.CacheSize)
	assert.Equal(t, "127.0.0.1:8420", cfg.ServerAddress())
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.ListLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teacup.toml")
	content := `
[general]
log_level = "debug"

[engine]
max_depth = 500
grammar_file = "$TEACUP_TEST_DIR/grammar.toml"

[server]
port = 9000
read_timeout = "5s"

[history]
enabled = true
path = "$TEACUP_TEST_DIR/history.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TEACUP_TEST_DIR", dir)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, 500, cfg.Engine.MaxDepth)
	assert.Equal(t, 256, cfg.Engine.CacheSize, "defaults fill missing keys")
	assert.Equal(t, filepath.Join(dir, "grammar.toml"), cfg.Engine.GrammarFile)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teacup.yaml")
	content := "server:\n  port: 9100\n  write_timeout: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.WriteTimeout.Duration)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[server]\nport = 70000\n"), 0o644))
	_, err = Load(bad)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeConfigError))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.General.LogFormat = "xml" }},
		{"negative depth", func(c *Config) { c.Engine.MaxDepth = -1 }},
		{"negative cache", func(c *Config) { c.Engine.CacheSize = -1 }},
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"message size", func(c *Config) { c.Server.MaxMessageSize = 0 }},
		{"history without path", func(c *Config) {
			c.History.Enabled = true
			c.History.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, mdwerror.CodeConfigError))
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\ncache_size = 8\n"), 0o644))
	t.Setenv("TEACUP_CONFIG", path)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Engine.CacheSize)
}
