package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/marmotbyte/stash/internal/logger"
	"github.com/marmotbyte/stash/pkg/errors"
	"github.com/marmotbyte/stash/pkg/fsutil"
)

// Manager composes the memory and disk layers behind one read-through /
// write-through API. Reads check memory first and promote disk hits into
// memory; writes populate both layers. Disk is authoritative for
// cross-process durability, memory is a best-effort accelerator for the
// current process, so the two may transiently diverge.
type Manager struct {
	memory      *MemoryCache
	disk        *DiskCache
	invalidator *Invalidator
}

// Stats merges both layers into one view.
type Stats struct {
	MemoryEntries int    `json:"memory_entries"`
	MemoryHits    uint64 `json:"memory_hits"`
	MemoryMisses  uint64 `json:"memory_misses"`
	DiskEntries   int    `json:"disk_entries"`
	DiskSizeBytes uint64 `json:"disk_size_bytes"`
	DiskHits      uint64 `json:"disk_hits"`
	DiskMisses    uint64 `json:"disk_misses"`
}

// TotalEntries returns the entry count across both layers.
func (s Stats) TotalEntries() int {
	return s.MemoryEntries + s.DiskEntries
}

// HitRate returns total hits over total accesses across both layers, or 0
// when there were none.
func (s Stats) HitRate() float64 {
	hits := s.MemoryHits + s.DiskHits
	total := hits + s.MemoryMisses + s.DiskMisses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// SizeHuman renders the disk footprint as B, KB, or MB by magnitude.
func (s Stats) SizeHuman() string {
	bytes := s.DiskSizeBytes
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// NewManager creates a manager with a memory layer of the given capacity
// and the disk layer at the default cache location. A disk initialization
// failure propagates; there is no cache-less fallback at this layer.
func NewManager(memoryCapacity int) (*Manager, error) {
	path, err := fsutil.GetDatabasePath()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCacheInit, "resolving cache path: %v", err)
	}
	return NewManagerAtPath(path, memoryCapacity)
}

// NewManagerAtPath is NewManager with an explicit database path.
func NewManagerAtPath(path string, memoryCapacity int) (*Manager, error) {
	disk, err := OpenDiskCache(path)
	if err != nil {
		return nil, err
	}
	return &Manager{
		memory:      NewMemoryCache(memoryCapacity),
		disk:        disk,
		invalidator: NewInvalidator(),
	}, nil
}

// GetRaw returns the serialized payload for key, checking memory first and
// falling back to disk. A disk hit is promoted into memory so the next
// access is served from there. Disk errors are logged and reported as a
// miss: the cache is an optimization, never a source of truth, and callers
// must be prepared to recompute on any miss.
func (m *Manager) GetRaw(key string) (string, bool) {
	if value, ok := m.memory.GetRaw(key); ok {
		return value, true
	}

	value, ok, err := m.disk.Get(key)
	if err != nil {
		logger.Warn("Disk cache read failed", logger.Fields{"key": key, "error": err})
		return "", false
	}
	if !ok {
		return "", false
	}

	m.memory.Set(key, value)
	return value, true
}

// SetRaw writes the payload to both layers. The memory write cannot fail
// and is not rolled back when the disk write does; the disk error is
// propagated because it means the durable copy may be stale or missing.
func (m *Manager) SetRaw(key, payload string, ttl time.Duration) error {
	m.memory.Set(key, payload)
	return m.disk.Set(key, payload, ttl)
}

// Delete removes key from both layers and reports whether the disk layer
// held it.
func (m *Manager) Delete(key string) (bool, error) {
	m.memory.Remove(key)
	return m.disk.Delete(key)
}

// DeletePrefix removes every entry whose key starts with prefix from both
// layers and returns the number of disk rows removed.
func (m *Manager) DeletePrefix(prefix string) (int64, error) {
	for _, key := range m.memory.Keys() {
		if strings.HasPrefix(key, prefix) {
			m.memory.Remove(key)
		}
	}
	return m.disk.DeletePrefix(prefix)
}

// Contains reports whether either layer holds a live entry for key.
func (m *Manager) Contains(key string) bool {
	return m.memory.Contains(key) || m.disk.Contains(key)
}

// Clear empties both layers and resets all counters. The memory clear
// always succeeds; a disk failure propagates.
func (m *Manager) Clear() error {
	m.memory.Clear()
	return m.disk.Clear()
}

// Prune removes expired rows from the disk layer.
func (m *Manager) Prune() (int64, error) {
	return m.disk.Prune()
}

// Vacuum reclaims file space on the disk layer.
func (m *Manager) Vacuum() error {
	return m.disk.Vacuum()
}

// InvalidateAll bumps the invalidation epoch and drops the memory layer so
// the coarse invalidation is observable in-process. Disk rows keep their
// TTLs; callers tracking cached-at timestamps check them against
// Invalidator.IsValid.
func (m *Manager) InvalidateAll() {
	m.invalidator.InvalidateAll()
	m.memory.Clear()
}

// Invalidator exposes the epoch primitive for callers that combine it with
// TTL expiration.
func (m *Manager) Invalidator() *Invalidator {
	return m.invalidator
}

// Memory returns the memory layer. Diagnostic use.
func (m *Manager) Memory() *MemoryCache {
	return m.memory
}

// Disk returns the disk layer. Diagnostic use.
func (m *Manager) Disk() *DiskCache {
	return m.disk
}

// Stats merges the statistics of both layers. A disk stats failure is
// logged and leaves the disk fields zero.
func (m *Manager) Stats() Stats {
	memStats := m.memory.Stats()
	diskStats, err := m.disk.Stats()
	if err != nil {
		logger.Warn("Disk cache stats failed", logger.Fields{"error": err})
	}

	return Stats{
		MemoryEntries: memStats.Entries,
		MemoryHits:    memStats.Hits,
		MemoryMisses:  memStats.Misses,
		DiskEntries:   diskStats.Entries,
		DiskSizeBytes: diskStats.SizeBytes,
		DiskHits:      diskStats.Hits,
		DiskMisses:    diskStats.Misses,
	}
}

// Close releases the disk layer.
func (m *Manager) Close() error {
	return m.disk.Close()
}

// Get reads and deserializes the value for key. An entry whose payload
// does not unmarshal into T is logged and reported as a miss.
func Get[T any](m *Manager, key string) (T, bool) {
	var value T
	raw, ok := m.GetRaw(key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("Cached payload failed to deserialize", logger.Fields{"key": key, "error": err})
		return value, false
	}
	return value, true
}

// Set serializes the value once and writes it through both layers with the
// given TTL.
func Set[T any](m *Manager, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "serializing value for %q: %v", key, err)
	}
	return m.SetRaw(key, string(raw), ttl)
}
