package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marmotbyte/stash/internal/logger"
	"github.com/marmotbyte/stash/pkg/errors"
	"github.com/marmotbyte/stash/pkg/fsutil"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// schemaSQL is applied idempotently on every open. The layout is part of
// the on-disk contract and must not change shape: key-addressed rows with
// unix-second timestamps, plus a metadata table holding the hit/miss
// counters as decimal text.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS cache (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL,
    access_count INTEGER DEFAULT 0,
    last_accessed INTEGER
);

CREATE INDEX IF NOT EXISTS idx_expires ON cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_key_prefix ON cache(key);

CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

INSERT OR IGNORE INTO metadata (key, value) VALUES ('hits', '0');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('misses', '0');
`

// DiskCache is a durable key-value store with per-entry TTL, backed by a
// SQLite database file. Expired rows are deleted lazily when a read
// observes them; Prune exists to reclaim space proactively.
//
// All operations serialize on an internal mutex so exactly one statement
// from this process is in flight at a time. The connection pool is also
// capped at one connection.
type DiskCache struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// DiskStats is a point-in-time snapshot of the disk layer.
type DiskStats struct {
	Entries   int
	SizeBytes uint64
	Hits      uint64
	Misses    uint64
	// Expired counts rows already past their expiration but not yet
	// pruned or lazily deleted.
	Expired int
}

// OpenDiskCache opens (creating if absent) the cache database at path,
// ensures the parent directory exists, and applies the schema. WAL mode
// with relaxed sync is enabled for throughput.
func OpenDiskCache(path string) (*DiskCache, error) {
	if err := fsutil.EnsurePrivateDir(filepath.Dir(path)); err != nil {
		return nil, errors.Wrapf(errors.ErrCacheInit, "creating cache directory: %v", err)
	}

	logger.Debug("Opening cache database", logger.Fields{"path": path})
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCacheInit, "opening database: %v", err)
	}
	// One connection, guarded further by DiskCache.mu.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrCacheInit, "applying schema: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrCacheInit, "enabling WAL mode: %v", err)
	}

	logger.Debug("Cache database initialized")
	return &DiskCache{db: db, path: path}, nil
}

// Path returns the location of the backing database file.
func (d *DiskCache) Path() string {
	return d.path
}

// Close closes the underlying database.
func (d *DiskCache) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.db.Close()
}

// Get returns the payload stored under key, or ok=false on a miss. A row
// at or past its expiration is deleted on sight and reported as a miss.
// Valid hits bump the row's access count and last-accessed time as well as
// the global hit counter.
func (d *DiskCache) Get(key string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := nowUnix()

	var value string
	var expiresAt int64
	err := d.db.QueryRow("SELECT value, expires_at FROM cache WHERE key = ?", key).
		Scan(&value, &expiresAt)
	switch {
	case err == sql.ErrNoRows:
		if err := d.incrementCounter("misses"); err != nil {
			return "", false, err
		}
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrapf(errors.ErrCacheRead, "querying key %q: %v", key, err)
	}

	if expiresAt <= now {
		logger.Debug("Cache entry expired", logger.Fields{"key": key})
		if _, err := d.db.Exec("DELETE FROM cache WHERE key = ?", key); err != nil {
			return "", false, errors.Wrapf(errors.ErrCacheWrite, "deleting expired key %q: %v", key, err)
		}
		if err := d.incrementCounter("misses"); err != nil {
			return "", false, err
		}
		return "", false, nil
	}

	if _, err := d.db.Exec(
		"UPDATE cache SET access_count = access_count + 1, last_accessed = ? WHERE key = ?",
		now, key,
	); err != nil {
		return "", false, errors.Wrapf(errors.ErrCacheWrite, "updating access stats for %q: %v", key, err)
	}
	if err := d.incrementCounter("hits"); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores the payload under key with the given TTL, replacing any
// existing row. An overwrite is a fresh entry: the access count resets and
// last-accessed becomes now.
func (d *DiskCache) Set(key, value string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := nowUnix()
	expiresAt := now + int64(ttl/time.Second)

	if _, err := d.db.Exec(
		`INSERT OR REPLACE INTO cache (key, value, created_at, expires_at, access_count, last_accessed)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		key, value, now, expiresAt, now,
	); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "storing key %q: %v", key, err)
	}

	logger.Debug("Cached key", logger.Fields{"key": key, "ttl": ttl})
	return nil
}

// Delete removes the row for key and reports whether one existed.
func (d *DiskCache) Delete(key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec("DELETE FROM cache WHERE key = ?", key)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCacheWrite, "deleting key %q: %v", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(errors.ErrCacheWrite, "deleting key %q: %v", key, err)
	}
	return affected > 0, nil
}

// DeletePrefix removes every row whose key starts with prefix and returns
// the number removed. Used for namespace-level invalidation, e.g. clearing
// all "search:" entries.
func (d *DiskCache) DeletePrefix(prefix string) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec("DELETE FROM cache WHERE key LIKE ?", prefix+"%")
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCacheWrite, "deleting prefix %q: %v", prefix, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCacheWrite, "deleting prefix %q: %v", prefix, err)
	}
	return affected, nil
}

// Clear removes all rows and resets the hit/miss counters.
func (d *DiskCache) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec("DELETE FROM cache"); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "clearing cache: %v", err)
	}
	if _, err := d.db.Exec("UPDATE metadata SET value = '0' WHERE key IN ('hits', 'misses')"); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "resetting counters: %v", err)
	}

	logger.Info("Cache cleared")
	return nil
}

// Prune deletes every row at or past its expiration and returns the count
// removed. Lazy expiration on Get keeps reads correct without this; Prune
// only reclaims rows.
func (d *DiskCache) Prune() (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec("DELETE FROM cache WHERE expires_at <= ?", nowUnix())
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCacheWrite, "pruning expired entries: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCacheWrite, "pruning expired entries: %v", err)
	}

	if affected > 0 {
		logger.Info("Pruned expired cache entries", logger.Fields{"count": affected})
	}
	return affected, nil
}

// Vacuum rebuilds the database file to reclaim space after large
// deletions. Pure maintenance, no semantic effect.
func (d *DiskCache) Vacuum() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec("VACUUM"); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "vacuuming database: %v", err)
	}
	logger.Info("Cache database vacuumed")
	return nil
}

// Contains reports whether a live (unexpired) row exists for key without
// touching counters or access stats.
func (d *DiskCache) Contains(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	var one int
	err := d.db.QueryRow(
		"SELECT 1 FROM cache WHERE key = ? AND expires_at > ?",
		key, nowUnix(),
	).Scan(&one)
	return err == nil
}

// Stats returns live row count, file size, counters, and how many rows are
// past expiration but not yet reclaimed.
func (d *DiskCache) Stats() (DiskStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var stats DiskStats
	if err := d.db.QueryRow("SELECT COUNT(*) FROM cache").Scan(&stats.Entries); err != nil {
		return DiskStats{}, errors.Wrapf(errors.ErrCacheRead, "counting entries: %v", err)
	}
	if err := d.db.QueryRow(
		"SELECT COUNT(*) FROM cache WHERE expires_at <= ?", nowUnix(),
	).Scan(&stats.Expired); err != nil {
		return DiskStats{}, errors.Wrapf(errors.ErrCacheRead, "counting expired entries: %v", err)
	}

	var err error
	stats.Hits, err = d.readCounter("hits")
	if err != nil {
		return DiskStats{}, err
	}
	stats.Misses, err = d.readCounter("misses")
	if err != nil {
		return DiskStats{}, err
	}

	if info, err := os.Stat(d.path); err == nil {
		stats.SizeBytes = uint64(info.Size())
	}
	return stats, nil
}

// incrementCounter bumps a metadata counter. Counters are stored as
// decimal text, so the arithmetic round-trips through CAST.
func (d *DiskCache) incrementCounter(name string) error {
	if _, err := d.db.Exec(
		"UPDATE metadata SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT) WHERE key = ?",
		name,
	); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "incrementing %s counter: %v", name, err)
	}
	return nil
}

func (d *DiskCache) readCounter(name string) (uint64, error) {
	var value uint64
	err := d.db.QueryRow(
		"SELECT CAST(value AS INTEGER) FROM metadata WHERE key = ?", name,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCacheRead, "reading %s counter: %v", name, err)
	}
	return value, nil
}
