package cache

import "testing"

// stubClock pins the package clock to a fixed unix-second timestamp for the
// duration of a test.
func stubClock(t *testing.T, unixSeconds int64) {
	t.Helper()

	origUnix := nowUnix
	origMillis := nowMillis
	nowUnix = func() int64 { return unixSeconds }
	nowMillis = func() uint64 { return uint64(unixSeconds) * 1000 }
	t.Cleanup(func() {
		nowUnix = origUnix
		nowMillis = origMillis
	})
}

// advanceClock moves the stubbed clock forward without restoring handlers;
// call stubClock first.
func advanceClock(seconds int64) {
	base := nowUnix()
	nowUnix = func() int64 { return base + seconds }
	nowMillis = func() uint64 { return uint64(base+seconds) * 1000 }
}
