// Package config provides configuration management for the stash cache
// tool. It handles loading, validating, and saving application settings.
// The package supports YAML configuration files and provides sensible
// defaults while allowing customization through configuration files.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/marmotbyte/stash/pkg/errors"
	"github.com/marmotbyte/stash/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir       string        `yaml:"cache_dir,omitempty"`
	MemoryCapacity int           `yaml:"memory_capacity"`
	DefaultTTL     time.Duration `yaml:"default_ttl"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // json, table
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultMemoryCapacity is the default number of entries held by the
	// in-memory cache layer.
	DefaultMemoryCapacity = 1000

	// DefaultTTL is the default time-to-live for cached data when the
	// caller does not pick a kind-specific TTL.
	DefaultTTL = time.Hour

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			MemoryCapacity: DefaultMemoryCapacity,
			DefaultTTL:     DefaultTTL,
			OutputFormat:   "table",
			LogLevel:       "info",
		},
	}
}

// GetDefaultConfigPath returns the default path of the configuration file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// LoadConfig loads the configuration from the given path. A missing file is
// not an error; defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file %s", path)
	}
	defer func() { _ = file.Close() }()

	return parseConfig(file)
}

func parseConfig(reader io.Reader) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(config); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrConfigParse.Error())
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to the given path, creating the
// parent directory if necessary. The write goes through a temporary file
// so a crash cannot leave a half-written config behind.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrap(err, errors.ErrConfigDirectory.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary config file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	encoder := yaml.NewEncoder(tmp)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrConfigEncode.Error())
	}
	if err := encoder.Close(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, errors.ErrConfigEncode.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temporary config file")
	}

	if err := os.Chmod(tmp.Name(), fsutil.FileModeDefault); err != nil {
		return errors.Wrap(err, "failed to set config file permissions")
	}
	return os.Rename(tmp.Name(), path)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Settings.MemoryCapacity < 0 {
		return errors.Wrapf(errors.ErrConfigValidation, "memory_capacity must not be negative (got %d)", c.Settings.MemoryCapacity)
	}
	if c.Settings.DefaultTTL < 0 {
		return errors.Wrapf(errors.ErrConfigValidation, "default_ttl must not be negative (got %s)", c.Settings.DefaultTTL)
	}

	switch c.Settings.OutputFormat {
	case "", "table", "json":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "unknown output format %q", c.Settings.OutputFormat)
	}

	switch c.Settings.LogLevel {
	case "", "error", "warn", "warning", "info", "debug":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "unknown log level %q", c.Settings.LogLevel)
	}

	return nil
}

// CacheDir returns the configured cache directory, falling back to the
// platform default when unset.
func (c *Config) CacheDir() (string, error) {
	if c.Settings.CacheDir != "" {
		return c.Settings.CacheDir, nil
	}
	return fsutil.GetCacheDir()
}
