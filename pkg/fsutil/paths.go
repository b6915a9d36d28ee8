package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the name of the application used in paths.
	AppName = "stash"

	// DatabaseFileName is the file name of the cache database inside the
	// cache directory.
	DatabaseFileName = "cache.db"
)

// GetCacheDir returns the platform-specific cache directory for the
// application.
// On Linux: ~/.cache/stash/
// On macOS: ~/Library/Caches/stash/
// On Windows: %LOCALAPPDATA%\stash\cache\
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// GetDatabasePath returns the default path of the cache database file.
func GetDatabasePath() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, DatabaseFileName), nil
}

// GetConfigDir returns the platform-specific configuration directory for
// the application.
// On Linux: ~/.config/stash/
// On macOS: ~/Library/Application Support/stash/
// On Windows: %APPDATA%\stash\
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			configDir, err := os.UserConfigDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(configDir, AppName), nil
		}
		return filepath.Join(appData, AppName), nil

	default:
		// os.UserConfigDir honors XDG_CONFIG_HOME on Linux and maps to
		// ~/Library/Application Support on macOS.
		configDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(configDir, AppName), nil
	}
}
