package cache_test

import (
	"testing"

	"github.com/marmotbyte/stash/pkg/cache"
	"github.com/marmotbyte/stash/pkg/cache/mocks"
	"github.com/marmotbyte/stash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOperationInfo(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Stats().Return(cache.Stats{
		MemoryEntries: 3,
		MemoryHits:    7,
		MemoryMisses:  1,
		DiskEntries:   12,
		DiskSizeBytes: 2048,
		DiskHits:      2,
		DiskMisses:    2,
	})

	info := cache.NewOperation(c).Info()
	assert.Contains(t, info, "Cache Information:")
	assert.Contains(t, info, "3 entries (7 hits, 1 misses)")
	assert.Contains(t, info, "12 entries, 2.0 KB (2 hits, 2 misses)")
	assert.Contains(t, info, "75.0%")
}

func TestOperationClear(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Stats().Return(cache.Stats{MemoryEntries: 2, DiskEntries: 3, DiskSizeBytes: 500})
	c.EXPECT().Clear().Return(nil)

	msg, err := cache.NewOperation(c).Clear()
	require.NoError(t, err)
	assert.Contains(t, msg, "Removed 5 entries")
	assert.Contains(t, msg, "500 B")
}

func TestOperationClearEmptyCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Stats().Return(cache.Stats{})
	c.EXPECT().Clear().Return(nil)

	msg, err := cache.NewOperation(c).Clear()
	require.NoError(t, err)
	assert.Equal(t, "Cache is already empty.", msg)
}

func TestOperationClearError(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Stats().Return(cache.Stats{})
	c.EXPECT().Clear().Return(errors.ErrCacheWrite)

	_, err := cache.NewOperation(c).Clear()
	require.ErrorIs(t, err, errors.ErrCacheWrite)
}

func TestOperationPrune(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Prune().Return(int64(4), nil)

	msg, err := cache.NewOperation(c).Prune()
	require.NoError(t, err)
	assert.Equal(t, "Pruned 4 expired entries.", msg)
}

func TestOperationPruneNothingExpired(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Prune().Return(int64(0), nil)

	msg, err := cache.NewOperation(c).Prune()
	require.NoError(t, err)
	assert.Equal(t, "No expired entries to prune.", msg)
}

func TestOperationVacuum(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	gomock.InOrder(
		c.EXPECT().Stats().Return(cache.Stats{DiskSizeBytes: 4000}),
		c.EXPECT().Vacuum().Return(nil),
		c.EXPECT().Stats().Return(cache.Stats{DiskSizeBytes: 3500}),
	)

	msg, err := cache.NewOperation(c).Vacuum()
	require.NoError(t, err)
	assert.Contains(t, msg, "Reclaimed 500 B")
}

func TestOperationVacuumNoSpaceFreed(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	gomock.InOrder(
		c.EXPECT().Stats().Return(cache.Stats{DiskSizeBytes: 4000}),
		c.EXPECT().Vacuum().Return(nil),
		c.EXPECT().Stats().Return(cache.Stats{DiskSizeBytes: 4000}),
	)

	msg, err := cache.NewOperation(c).Vacuum()
	require.NoError(t, err)
	assert.Equal(t, "Vacuum complete.", msg)
}

func TestOperationInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := mocks.NewMockCache(ctrl)
	c.EXPECT().InvalidateAll()

	msg := cache.NewOperation(c).Invalidate()
	assert.Equal(t, "All cache entries invalidated.", msg)
}
