// Package errors defines the sentinel error values shared across the
// application together with small helpers for wrapping errors with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrConfigDirectory  = fmt.Errorf("failed to create config directory")

	// Cache errors. Each one identifies a failure class of the cache
	// subsystem; callers match with errors.Is.
	ErrCacheInit      = fmt.Errorf("failed to initialize cache")
	ErrCacheRead      = fmt.Errorf("failed to read from cache")
	ErrCacheWrite     = fmt.Errorf("failed to write to cache")
	ErrCacheCorrupted = fmt.Errorf("cache entry is corrupted")
	// ErrCacheFull is reserved for a future size cap on the disk layer.
	// No operation currently returns it.
	ErrCacheFull = fmt.Errorf("cache is full")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
