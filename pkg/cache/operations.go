package cache

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Operation turns cache management calls into human-readable result
// messages for the CLI.
type Operation struct {
	cache Cache
}

// NewOperation creates a new operation wrapper around a cache.
func NewOperation(cache Cache) *Operation {
	return &Operation{cache: cache}
}

// Info returns a formatted report of the merged cache statistics.
func (op *Operation) Info() string {
	stats := op.cache.Stats()

	return fmt.Sprintf(`Cache Information:
  Memory:   %d entries (%d hits, %d misses)
  Disk:     %d entries, %s (%d hits, %d misses)
  Hit Rate: %.1f%%`,
		stats.MemoryEntries,
		stats.MemoryHits,
		stats.MemoryMisses,
		stats.DiskEntries,
		stats.SizeHuman(),
		stats.DiskHits,
		stats.DiskMisses,
		stats.HitRate()*100,
	)
}

// Clear empties both cache layers and reports what was removed.
func (op *Operation) Clear() (string, error) {
	before := op.cache.Stats()

	if err := op.cache.Clear(); err != nil {
		return "", fmt.Errorf("failed to clear cache: %w", err)
	}

	if before.TotalEntries() == 0 {
		return "Cache is already empty.", nil
	}
	return fmt.Sprintf("Successfully cleared cache. Removed %d entries, freed %s of disk space.",
		before.TotalEntries(), humanize.Bytes(before.DiskSizeBytes)), nil
}

// Prune removes expired disk entries and reports the count.
func (op *Operation) Prune() (string, error) {
	removed, err := op.cache.Prune()
	if err != nil {
		return "", fmt.Errorf("failed to prune cache: %w", err)
	}

	if removed == 0 {
		return "No expired entries to prune.", nil
	}
	return fmt.Sprintf("Pruned %d expired entries.", removed), nil
}

// Vacuum compacts the database file and reports the space reclaimed.
func (op *Operation) Vacuum() (string, error) {
	before := op.cache.Stats()

	if err := op.cache.Vacuum(); err != nil {
		return "", fmt.Errorf("failed to vacuum cache: %w", err)
	}

	after := op.cache.Stats()
	if after.DiskSizeBytes < before.DiskSizeBytes {
		freed := before.DiskSizeBytes - after.DiskSizeBytes
		return fmt.Sprintf("Vacuum complete. Reclaimed %s.", humanize.Bytes(freed)), nil
	}
	return "Vacuum complete.", nil
}

// Invalidate triggers a global invalidation.
func (op *Operation) Invalidate() string {
	op.cache.InvalidateAll()
	return "All cache entries invalidated."
}
