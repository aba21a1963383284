package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format" yaml:"format" json:"format"`
	Quiet   bool   `mapstructure:"quiet" yaml:"quiet" json:"quiet"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Detection DetectionConfig `mapstructure:"detection" yaml:"detection" json:"detection"`
	Report    ReportConfig    `mapstructure:"report" yaml:"report" json:"report"`
}

// DetectionConfig holds burst detection defaults
type DetectionConfig struct {
	WindowSeconds int64 `mapstructure:"window_seconds" yaml:"window_seconds" json:"window_seconds"`
	Threshold     int   `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	// Workers bounds per-address detection; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// ReportConfig holds report and export defaults
type ReportConfig struct {
	Top         int    `mapstructure:"top" yaml:"top" json:"top"`
	CSV         string `mapstructure:"csv" yaml:"csv" json:"csv"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Detection: DetectionConfig{
			WindowSeconds: 60,
			Threshold:     3,
		},
		Report: ReportConfig{
			Top: 5,
		},
	}
}

var (
	ErrInvalidFormat    = errors.New("format must be text or ndjson")
	ErrInvalidWindow    = errors.New("window must be positive")
	ErrInvalidThreshold = errors.New("threshold must be positive")
	ErrInvalidTop       = errors.New("top must be positive")
	ErrInvalidWorkers   = errors.New("workers must not be negative")
)

// Validate rejects values the analyzer cannot run with
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "ndjson":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.Detection.WindowSeconds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, c.Detection.WindowSeconds)
	}
	if c.Detection.Threshold <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, c.Detection.Threshold)
	}
	if c.Report.Top <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTop, c.Report.Top)
	}
	if c.Detection.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Detection.Workers)
	}
	return nil
}

// LoadWithMeta loads and validates configuration from files and
// environment, and reports the file used ("" when none).
// Config file search order (highest precedence first):
// 1. ./.authscan.yaml, ./.authscan.yml, ./authscan.yaml, ./authscan.yml
// 2. the same names in the home directory
// 3. $XDG_CONFIG_HOME/authscan/config.yaml (or ~/.config/authscan/config.yaml)
// 4. /etc/authscan/config.yaml
//
// Errors name their source: the config file path or "environment".
func LoadWithMeta() (*Config, string, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, configFile, fmt.Errorf("%s: %w", configFile, err)
		}
		cfg = loaded
	}
	fileErr := cfg.Validate()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, configFile, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		// Blame the file only when the environment did not already override it.
		if fileErr != nil && configFile != "" && errors.Is(err, errors.Unwrap(fileErr)) {
			return nil, configFile, fmt.Errorf("%s: %w", configFile, err)
		}
		return nil, configFile, fmt.Errorf("environment: %w", err)
	}

	return cfg, configFile, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".authscan.yaml", ".authscan.yml", "authscan.yaml", "authscan.yml"}

	var searchPaths []string

	// 1. Current directory
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, home)
	}

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	// 3. Config directory, then 4. system config
	var dirs []string
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "authscan"))
	}
	dirs = append(dirs, "/etc/authscan")

	for _, dir := range dirs {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AUTHSCAN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("AUTHSCAN_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("AUTHSCAN_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("AUTHSCAN_WINDOW"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("AUTHSCAN_WINDOW: %w", err)
		}
		cfg.Detection.WindowSeconds = n
	}
	if v := os.Getenv("AUTHSCAN_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTHSCAN_THRESHOLD: %w", err)
		}
		cfg.Detection.Threshold = n
	}
	if v := os.Getenv("AUTHSCAN_TOP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTHSCAN_TOP: %w", err)
		}
		cfg.Report.Top = n
	}
	return nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
