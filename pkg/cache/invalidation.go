package cache

import (
	"sync/atomic"
	"time"

	"github.com/marmotbyte/stash/internal/logger"
)

// Invalidator tracks a single global invalidation epoch. Entries created
// before the last invalidation are considered stale regardless of their
// individual TTL. The epoch is not consulted by the Manager's read path;
// callers that track their own cached-at timestamps combine IsValid with
// the TTL checks the layers already perform.
type Invalidator struct {
	// lastInvalidation holds unix milliseconds of the last global
	// invalidation. Zero means never invalidated.
	lastInvalidation atomic.Uint64
}

// NewInvalidator creates an invalidator that has never been triggered.
func NewInvalidator() *Invalidator {
	return &Invalidator{}
}

// InvalidateAll marks the current time as the new invalidation boundary.
// Safe for unsynchronized concurrent callers.
func (i *Invalidator) InvalidateAll() {
	i.lastInvalidation.Store(nowMillis())
	logger.Debug("Global cache invalidation triggered")
}

// IsValid reports whether an entry cached at the given unix-millisecond
// timestamp postdates the last global invalidation.
func (i *Invalidator) IsValid(cachedAtMillis uint64) bool {
	return cachedAtMillis > i.lastInvalidation.Load()
}

// TimeSinceInvalidation returns the elapsed time since the last global
// invalidation, clamped to zero.
func (i *Invalidator) TimeSinceInvalidation() time.Duration {
	last := i.lastInvalidation.Load()
	now := nowMillis()
	if now < last {
		return 0
	}
	return time.Duration(now-last) * time.Millisecond
}
