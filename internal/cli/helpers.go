package cli

import (
	"fmt"
	"path/filepath"

	"github.com/marmotbyte/stash/internal/logger"
	"github.com/marmotbyte/stash/pkg/cache"
	"github.com/marmotbyte/stash/pkg/config"
	"github.com/marmotbyte/stash/pkg/fsutil"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration, applying CLI flag overrides.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

// openManager opens the two-tier cache described by the configuration.
func openManager(cfg *config.Config) (*cache.Manager, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory: %w", err)
	}

	mgr, err := cache.NewManagerAtPath(filepath.Join(dir, fsutil.DatabaseFileName), cfg.Settings.MemoryCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return mgr, nil
}
