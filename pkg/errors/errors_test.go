package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrCacheRead, "loading entry")
	require.Error(t, wrapped)
	assert.Equal(t, "loading entry: failed to read from cache", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, ErrCacheRead))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 42))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrCacheWrite, "storing key %q", "pkg:firefox")
	require.Error(t, wrapped)
	assert.Equal(t, `storing key "pkg:firefox": failed to write to cache`, wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, ErrCacheWrite))
}
