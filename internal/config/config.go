package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client
type Config struct {
	API           APIConfig
	Storage       StorageConfig
	Notifications NotificationConfig
	Profile       ProfileConfig
	Errors        ErrorConfig
	Logging       LoggingConfig
}

// APIConfig holds backend API specific configuration
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryMax       int
	RetryInterval  time.Duration
}

// StorageConfig holds local persistence specific configuration
type StorageConfig struct {
	Type string
	Path string
}

// NotificationConfig holds notification sync specific configuration
type NotificationConfig struct {
	PollInterval time.Duration
	Alerts       bool
}

// ProfileConfig holds profile autosave specific configuration
type ProfileConfig struct {
	AutosaveDebounce time.Duration
}

// ErrorConfig holds user-facing error presentation configuration
type ErrorConfig struct {
	DismissAfter time.Duration
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if one exists at the given path
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// Read from environment variables
	v.SetEnvPrefix("JOBLUU")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.baseURL", "http://localhost:8080")
	v.SetDefault("api.requestTimeout", "10s")
	v.SetDefault("api.retryMax", 3)
	v.SetDefault("api.retryInterval", "250ms")

	// Storage defaults
	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.path", defaultStatePath())

	// Notification defaults
	v.SetDefault("notifications.pollInterval", "30s")
	v.SetDefault("notifications.alerts", true)

	// Profile defaults
	v.SetDefault("profile.autosaveDebounce", "1500ms")

	// Error presentation defaults
	v.SetDefault("errors.dismissAfter", "5s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "jobluu-state.json"
	}
	return dir + "/jobluu/state.json"
}
