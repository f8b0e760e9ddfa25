// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     config
// Description: Application configuration (teacup.toml)
// Author:      msto63
// Created:     2025-06-20
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	mdwconfig "github.com/msto63/teacup/foundation/core/config"
	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// EngineConfig holds language engine limits
type EngineConfig struct {
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
	MaxDepth       int    `toml:"max_depth" yaml:"max_depth"`
	CacheSize      int    `toml:"cache_size" yaml:"cache_size"`
	GrammarFile    string `toml:"grammar_file" yaml:"grammar_file"`
}

// ServerConfig holds the evaluation server settings
type ServerConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxMessageSize int64    `toml:"max_message_size" yaml:"max_message_size"`
}

// HistoryConfig holds the evaluation history settings
type HistoryConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	Path      string `toml:"path" yaml:"path"`
	ListLimit int    `toml:"list_limit" yaml:"list_limit"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	var cfg Config
	if err := mdwconfig.LoadFile(path, mdwconfig.FormatAuto, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from TEACUP_CONFIG or a default location.
// Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("TEACUP_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./teacup.toml",
			filepath.Join(os.Getenv("HOME"), ".config/teacup/teacup.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}) error {
		return mdwerror.New(fmt.Sprintf("invalid value for %s: %v", field, value)).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Validate").
			WithDetail("field", field)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if c.Engine.MaxInputLength < 0 {
		return invalid("engine.max_input_length", c.Engine.MaxInputLength)
	}
	if c.Engine.MaxDepth < 0 {
		return invalid("engine.max_depth", c.Engine.MaxDepth)
	}
	if c.Engine.CacheSize < 0 {
		return invalid("engine.cache_size", c.Engine.CacheSize)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.MaxMessageSize <= 0 {
		return invalid("server.max_message_size", c.Server.MaxMessageSize)
	}
	if c.History.Enabled && c.History.Path == "" {
		return invalid("history.path", c.History.Path)
	}
	if c.History.ListLimit <= 0 {
		return invalid("history.list_limit", c.History.ListLimit)
	}
	return nil
}

// ServerAddress returns host:port of the evaluation server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Engine
	if c.Engine.MaxInputLength == 0 {
		c.Engine.MaxInputLength = 64 * 1024
	}
	if c.Engine.MaxDepth == 0 {
		c.Engine.MaxDepth = 10000
	}
	if c.Engine.CacheSize == 0 {
		c.Engine.CacheSize = 256
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8420
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 60 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = 64 * 1024
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(os.Getenv("HOME"), ".local/share/teacup/history.db")
	}
	if c.History.ListLimit == 0 {
		c.History.ListLimit = 20
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Engine.GrammarFile = os.ExpandEnv(c.Engine.GrammarFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}
