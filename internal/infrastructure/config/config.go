package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile source names accepted in profiles.source.
const (
	// SourceFile loads profiles from a YAML file.
	SourceFile = "file"

	// SourceSQLite loads profiles from a SQLite database.
	SourceSQLite = "sqlite"
)

// Config is the root configuration structure for USB Gatekeeper.
// All configuration is loaded from YAML and can be overridden by environment
// variables.
type Config struct {
	Profiles ProfilesConfig `yaml:"profiles"`
	USB      USBConfig      `yaml:"usb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProfilesConfig selects and configures the per-login profiles source.
type ProfilesConfig struct {
	// Source is the profiles backend: "file" or "sqlite".
	Source string `yaml:"source"`

	// File is the profiles YAML path, used when Source is "file".
	File string `yaml:"file"`

	// Database contains SQLite settings, used when Source is "sqlite".
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig contains SQLite profiles-store settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// USBConfig contains bus enumeration settings.
type USBConfig struct {
	// ReuseSession keeps one bus session open across authentication attempts
	// instead of opening and tearing one down per attempt. Default false:
	// every attempt sees the live bus through a fresh session.
	ReuseSession bool `yaml:"reuse_session"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable
// overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: USBGATE_SECTION_KEY.
// For example: USBGATE_PROFILES_FILE, USBGATE_LOG_LEVEL.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Profiles: ProfilesConfig{
			Source: SourceFile,
			File:   "configs/profiles.yaml",
			Database: DatabaseConfig{
				Path:        "./data/usbgate.db",
				WALMode:     true,
				BusyTimeout: 5,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables follow the pattern:
// USBGATE_SECTION_KEY.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("USBGATE_PROFILES_SOURCE"); v != "" {
		cfg.Profiles.Source = v
	}
	if v := os.Getenv("USBGATE_PROFILES_FILE"); v != "" {
		cfg.Profiles.File = v
	}
	if v := os.Getenv("USBGATE_DATABASE_PATH"); v != "" {
		cfg.Profiles.Database.Path = v
	}
	if v := os.Getenv("USBGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("USBGATE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	switch c.Profiles.Source {
	case SourceFile:
		if c.Profiles.File == "" {
			errs = append(errs, "profiles.file is required when profiles.source is \"file\"")
		}
	case SourceSQLite:
		if c.Profiles.Database.Path == "" {
			errs = append(errs, "profiles.database.path is required when profiles.source is \"sqlite\"")
		}
	default:
		errs = append(errs, fmt.Sprintf("profiles.source must be %q or %q", SourceFile, SourceSQLite))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, "logging.level must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
