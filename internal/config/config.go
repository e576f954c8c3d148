package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for AccessNX
type Config struct {
	// Scan engine: "simulated" or "remote"
	Engine string `mapstructure:"engine"`

	// Remote engine endpoint (used when engine is "remote")
	APIURL string `mapstructure:"api_url"`

	// API key for the remote engine (or ACCESSNX_API_KEY)
	APIKey string `mapstructure:"api_key"`

	// Per-scan timeout
	ScanTimeout time.Duration `mapstructure:"scan_timeout"`

	// Output format (text, json, both)
	Format string `mapstructure:"format"`

	// Exit non-zero when the score falls below this value (0 disables)
	FailBelow float64 `mapstructure:"fail_below"`

	// Path to a rule catalog override (empty = embedded catalog)
	RulesFile string `mapstructure:"rules_file"`

	// Verbose output
	Verbose bool `mapstructure:"verbose"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// Engine names accepted in configuration.
const (
	EngineSimulated = "simulated"
	EngineRemote    = "remote"
)

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Engine:      EngineSimulated,
		APIURL:      "https://api.accessnx.dev",
		ScanTimeout: 2 * time.Minute,
		Format:      "text",
		FailBelow:   0,
		Verbose:     false,
		Debug:       false,
	}
}

// Load loads configuration with the following precedence (lowest to highest):
// 1. Default values
// 2. Config file (~/.accessnx.yaml or ./accessnx.yaml)
// 3. Environment variables (ACCESSNX_*)
// 4. CLI flags (handled by caller)
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration from a specific file path.
// If path is empty, it searches for config in standard locations.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("engine", defaults.Engine)
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("api_key", "")
	v.SetDefault("scan_timeout", defaults.ScanTimeout)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("fail_below", defaults.FailBelow)
	v.SetDefault("rules_file", "")
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("debug", defaults.Debug)

	v.SetConfigName("accessnx")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 1. Current directory
		v.AddConfigPath(".")

		// 2. Home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}

		// 3. XDG config directory
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			v.AddConfigPath(filepath.Join(xdgConfig, "accessnx"))
		}
	}

	v.SetEnvPrefix("ACCESSNX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Engine != EngineSimulated && c.Engine != EngineRemote {
		return fmt.Errorf("invalid engine: %s (must be %s or %s)", c.Engine, EngineSimulated, EngineRemote)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"both": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text, json, or both)", c.Format)
	}

	if c.ScanTimeout <= 0 {
		return fmt.Errorf("scan_timeout must be positive")
	}

	if c.FailBelow < 0 || c.FailBelow > 100 {
		return fmt.Errorf("fail_below must be between 0 and 100")
	}

	if c.Engine == EngineRemote && c.APIURL == "" {
		return fmt.Errorf("api_url is required for the remote engine")
	}

	return nil
}

// ShouldFailOnScore checks if a score falls below the failure threshold
func (c *Config) ShouldFailOnScore(score float64) bool {
	if c.FailBelow == 0 {
		return false // No threshold check
	}
	return score < c.FailBelow
}

// GenerateSampleConfig generates a sample configuration file content
func GenerateSampleConfig() string {
	return `# AccessNX Configuration
# Save this file as ~/.accessnx.yaml or ./accessnx.yaml

# Scan engine: "simulated" runs the built-in generator,
# "remote" submits scans to a hosted engine
engine: simulated

# Remote engine endpoint (remote engine only)
# api_url: https://api.accessnx.dev

# API key for the remote engine
# Can also be set via ACCESSNX_API_KEY env var
# api_key: ax_live_your_key_here

# Per-scan timeout
scan_timeout: 2m

# Output format: text, json, or both
format: text

# Exit code 1 when the accessibility score falls below this value
# Set to 0 to disable threshold checking
fail_below: 0

# Path to a custom WCAG rule catalog (defaults to the embedded one)
# rules_file: ./my-rules.yaml

# Enable verbose output
verbose: false

# Enable debug mode
debug: false
`
}
