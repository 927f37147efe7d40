// Package config handles configuration loading and management for arbor.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for arbor.
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Events    EventsConfig    `mapstructure:"events"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Tree      TreeConfig      `mapstructure:"tree"`
	Log       LogConfig       `mapstructure:"log"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the SQLite database path; empty uses the XDG default.
	Path string `mapstructure:"path"`
}

// EventsConfig holds event sink settings.
type EventsConfig struct {
	// BufferSize is the in-process emitter's channel buffer.
	BufferSize int `mapstructure:"buffer_size"`
	// KafkaBrokers optionally lists brokers to mirror events to.
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	// KafkaTopic is the topic events are mirrored to.
	KafkaTopic string `mapstructure:"kafka_topic"`
}

// LifecycleConfig holds node lifecycle timing.
type LifecycleConfig struct {
	// CompleteResetDelay is how long a completed node stays visible before
	// resetting to idle.
	CompleteResetDelay time.Duration `mapstructure:"complete_reset_delay"`
	// FailResetDelay is the longer delay after a failure, so observers have
	// time to notice it.
	FailResetDelay time.Duration `mapstructure:"fail_reset_delay"`
}

// TreeConfig holds tree construction settings.
type TreeConfig struct {
	// DefaultTemplate is the template used when a caller names none.
	DefaultTemplate string `mapstructure:"default_template"`
}

// LogConfig holds run-log settings.
type LogConfig struct {
	// Path is the run-log file; empty disables logging.
	Path string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ARBOR_ prefix)
// 2. Project config (.arbor.yaml in the current directory or a parent)
// 3. User config (~/.config/arbor/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("ARBOR")
	v.AutomaticEnv()
	v.BindEnv("store.path", "ARBOR_DB_PATH")
	v.BindEnv("log.path", "ARBOR_LOG_PATH")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "")
	v.SetDefault("events.buffer_size", 256)
	v.SetDefault("events.kafka_brokers", []string{})
	v.SetDefault("events.kafka_topic", "arbor-events")
	v.SetDefault("lifecycle.complete_reset_delay", 10*time.Second)
	v.SetDefault("lifecycle.fail_reset_delay", 15*time.Second)
	v.SetDefault("tree.default_template", "standard")
	v.SetDefault("log.path", "")
}

// userConfigDir returns the XDG config directory for arbor.
func userConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "arbor")
}

// findProjectConfig walks up from the working directory looking for .arbor.yaml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".arbor.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
