package cache

import (
	"strings"
	"time"
)

// Key builders for the cache namespace. The cache itself does not enforce
// this convention; callers use these so that namespace-level invalidation
// (DeletePrefix) works across the application.

// SearchKey returns the cache key for a search query. Queries are
// lowercased so differently-cased searches share one entry.
func SearchKey(query string) string {
	return "search:" + strings.ToLower(query)
}

// PackageKey returns the cache key for package metadata.
func PackageKey(name string) string {
	return "pkg:" + name
}

// NURIndexKey returns the cache key for the NUR index.
func NURIndexKey() string {
	return "nur:index"
}

// NURPackageKey returns the cache key for a NUR package.
func NURPackageKey(name string) string {
	return "nur:pkg:" + name
}

// DependenciesKey returns the cache key for a package dependency tree.
func DependenciesKey(name string) string {
	return "deps:" + name
}

// InstalledKey returns the cache key for the installed-package list.
func InstalledKey() string {
	return "installed"
}

// GenerationsKey returns the cache key for the system generation list.
func GenerationsKey() string {
	return "generations"
}

// Default TTLs per data kind. These are recommendations; callers pick the
// TTL per Set call and the cache treats it as an opaque duration.
const (
	// TTLSearch is for search results (5 minutes).
	TTLSearch = 5 * time.Minute

	// TTLPackage is for package metadata (1 hour).
	TTLPackage = time.Hour

	// TTLNURIndex is for the NUR index (24 hours).
	TTLNURIndex = 24 * time.Hour

	// TTLNURPackage is for NUR packages (1 hour).
	TTLNURPackage = time.Hour

	// TTLInstalled is for the installed-package list, which changes
	// frequently (1 minute).
	TTLInstalled = time.Minute

	// TTLGenerations is for the generation list (5 minutes).
	TTLGenerations = 5 * time.Minute

	// TTLDependencies is for dependency trees (1 hour).
	TTLDependencies = time.Hour

	// TTLShort is for temporary data (30 seconds).
	TTLShort = 30 * time.Second

	// TTLLong is for stable data (1 week).
	TTLLong = 7 * 24 * time.Hour
)
