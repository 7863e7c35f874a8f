package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the clipvault configuration
type Config struct {
	PollIntervalMS int    `yaml:"poll_interval_ms"`
	DataLocation   string `yaml:"data_location,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	LogFormat      string `yaml:"log_format,omitempty"`
}

// Keys lists the valid configuration keys in display order.
var Keys = []string{"poll-interval-ms", "data-location", "log-level", "log-format"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PollIntervalMS: 500,
		LogLevel:       "info",
		LogFormat:      "auto",
	}
}

// Manager manages configuration persistence
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager using the default path under
// the user's profile directory.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".config", "clipvault", "config.yaml")
	return &Manager{configPath: configPath}, nil
}

// NewManagerWithPath creates a config manager with a custom config path
func NewManagerWithPath(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Load reads the configuration from file, or returns defaults if the file
// doesn't exist.
func (m *Manager) Load() (*Config, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateAndSetDefaults(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to file
func (m *Manager) Save(config *Config) error {
	if err := validateAndSetDefaults(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateAndSetDefaults validates configuration and fills missing fields
func validateAndSetDefaults(config *Config) error {
	if config.PollIntervalMS == 0 {
		config.PollIntervalMS = 500
	}
	if config.PollIntervalMS < 50 || config.PollIntervalMS > 10000 {
		return fmt.Errorf("poll_interval_ms must be between 50 and 10000")
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "auto"
	}
	return nil
}

// GetConfigPath returns the path to the config file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// Update modifies a specific configuration value
func (m *Manager) Update(key, value string) error {
	config, err := m.Load()
	if err != nil {
		return err
	}

	switch key {
	case "poll-interval-ms":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for poll-interval-ms: %s", value)
		}
		config.PollIntervalMS = interval
	case "data-location":
		config.DataLocation = value
	case "log-level":
		config.LogLevel = value
	case "log-format":
		config.LogFormat = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return m.Save(config)
}

// Get returns the value for a specific configuration key
func (m *Manager) Get(key string) (string, error) {
	config, err := m.Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "poll-interval-ms":
		return strconv.Itoa(config.PollIntervalMS), nil
	case "data-location":
		if config.DataLocation == "" {
			return "[default]", nil
		}
		return config.DataLocation, nil
	case "log-level":
		return config.LogLevel, nil
	case "log-format":
		return config.LogFormat, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// List returns all configuration keys and values
func (m *Manager) List() (map[string]string, error) {
	config, err := m.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"poll-interval-ms": strconv.Itoa(config.PollIntervalMS),
		"data-location":    config.DataLocation,
		"log-level":        config.LogLevel,
		"log-format":       config.LogFormat,
	}

	if result["data-location"] == "" {
		result["data-location"] = "[default]"
	}

	return result, nil
}
