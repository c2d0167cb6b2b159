// Package config handles configuration loading for stockapi.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tigerding/stockapi/internal/infra"
	"github.com/tigerding/stockapi/internal/providers/finviz"
	"github.com/tigerding/stockapi/internal/providers/yahoo"
)

// Config represents the complete application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Upstream UpstreamConfig `mapstructure:"upstream" yaml:"upstream"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// UpstreamConfig holds settings for the two data sources.
type UpstreamConfig struct {
	YahooBaseURL     string `mapstructure:"yahoo_base_url"     yaml:"yahoo_base_url"`
	YahooFeedURL     string `mapstructure:"yahoo_feed_url"     yaml:"yahoo_feed_url"`
	FinvizBaseURL    string `mapstructure:"finviz_base_url"    yaml:"finviz_base_url"`
	UserAgent        string `mapstructure:"user_agent"         yaml:"user_agent"`
	TimeoutSec       int    `mapstructure:"timeout_sec"        yaml:"timeout_sec"`
	MaxInflightCalls int64  `mapstructure:"max_inflight_calls" yaml:"max_inflight_calls"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.stockapi/config.yaml (home directory)
//  3. /etc/stockapi/config.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKAPI_<SECTION>_<KEY>, e.g., STOCKAPI_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stockapi"))
	v.AddConfigPath("/etc/stockapi")

	v.SetEnvPrefix("STOCKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Upstream defaults
	v.SetDefault("upstream.yahoo_base_url", yahoo.DefaultBaseURL)
	v.SetDefault("upstream.yahoo_feed_url", yahoo.DefaultFeedURL)
	v.SetDefault("upstream.finviz_base_url", finviz.DefaultBaseURL)
	v.SetDefault("upstream.user_agent", infra.DefaultUserAgent)
	v.SetDefault("upstream.timeout_sec", 30)
	v.SetDefault("upstream.max_inflight_calls", int64(8))

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Gate builds the structured-provider call gate from the configured bound.
func (c *Config) Gate() *infra.Gate {
	return infra.NewGate(c.Upstream.MaxInflightCalls)
}

// ApplyHTTP pushes the upstream HTTP settings onto the shared client.
func (c *Config) ApplyHTTP() {
	if c.Upstream.UserAgent != "" {
		infra.UserAgent = c.Upstream.UserAgent
	}
	if c.Upstream.TimeoutSec > 0 {
		infra.HTTPClient.Timeout = time.Duration(c.Upstream.TimeoutSec) * time.Second
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
