package cache

import "time"

// The cache compares expirations against wall-clock time. Both readings are
// package variables so tests can pin the clock instead of sleeping.
var (
	// nowUnix returns the current time as unix seconds.
	nowUnix = func() int64 { return time.Now().Unix() }

	// nowMillis returns the current time as unix milliseconds.
	nowMillis = func() uint64 { return uint64(time.Now().UnixMilli()) }
)
