// Package config loads bridge settings from a YAML file and OVBRIDGE_*
// environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment override, e.g. OVBRIDGE_DEVICE.
const EnvPrefix = "OVBRIDGE"

// Config holds everything needed to bring up a runtime and serve one model.
type Config struct {
	// LibraryPath locates libopenvino_c. Empty uses the platform default.
	// OPENVINO_LIB_PATH is honoured as a fallback.
	LibraryPath string `mapstructure:"library_path"`

	// PluginConfig is an optional plugins.xml handed to the core.
	PluginConfig string `mapstructure:"plugin_config"`

	ModelPath   string `mapstructure:"model_path"`
	WeightsPath string `mapstructure:"weights_path"`

	Device   string `mapstructure:"device"`
	PoolSize int    `mapstructure:"pool_size"`
	LogLevel string `mapstructure:"log_level"`
}

var keys = []string{
	"library_path",
	"plugin_config",
	"model_path",
	"weights_path",
	"device",
	"pool_size",
	"log_level",
}

// Load reads path (if non-empty), applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("device", "CPU")
	v.SetDefault("pool_size", 1)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	if err := v.BindEnv("library_path", EnvPrefix+"_LIBRARY_PATH", "OPENVINO_LIB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind library_path: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if c.Device == "" {
		return errors.New("device must not be empty")
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("pool_size must be at least 1, got %d", c.PoolSize)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
