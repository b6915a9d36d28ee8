package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidatorStartsValid(t *testing.T) {
	inv := NewInvalidator()

	// Before the first invalidation every positive timestamp is valid.
	assert.True(t, inv.IsValid(1))
	assert.True(t, inv.IsValid(uint64(time.Now().UnixMilli())))
}

func TestInvalidateAll(t *testing.T) {
	stubClock(t, 1_000_000)
	inv := NewInvalidator()

	cachedAt := nowMillis()
	assert.True(t, inv.IsValid(cachedAt))

	advanceClock(1)
	inv.InvalidateAll()

	// Entries cached before the boundary are stale, later ones are not.
	assert.False(t, inv.IsValid(cachedAt))

	advanceClock(2)
	assert.True(t, inv.IsValid(nowMillis()))
}

func TestInvalidationBoundaryIsExclusive(t *testing.T) {
	stubClock(t, 1_000_000)
	inv := NewInvalidator()
	inv.InvalidateAll()

	// An entry cached at exactly the boundary is stale.
	assert.False(t, inv.IsValid(nowMillis()))
	assert.True(t, inv.IsValid(nowMillis()+1))
}

func TestTimeSinceInvalidation(t *testing.T) {
	stubClock(t, 1_000_000)
	inv := NewInvalidator()

	inv.InvalidateAll()
	assert.Equal(t, time.Duration(0), inv.TimeSinceInvalidation())

	advanceClock(90)
	assert.Equal(t, 90*time.Second, inv.TimeSinceInvalidation())
}
