package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete wfsort configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Locale  string        `json:"locale" mapstructure:"locale"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls how the normalized document is written
type OutputConfig struct {
	// Suffix is inserted before the extension when deriving the default
	// output path from the input file name
	Suffix string `json:"suffix" mapstructure:"suffix"`
}

// HistoryConfig controls the local run ledger
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Keep is the number of runs retained per working directory
	Keep int `json:"keep" mapstructure:"keep"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Locale:  "en",
		Output: OutputConfig{
			Suffix: "_sorted",
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    100,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .wfsort/config.json under root,
// falling back to defaults when no config file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("locale", "en")
	v.SetDefault("output.suffix", "_sorted")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.keep", 100)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".wfsort"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .wfsort/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".wfsort")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.History.Keep < 0 {
		return &ConfigError{Field: "history.keep", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
