package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "creates missing directory",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "sub", "dir")
			},
		},
		{
			name: "existing directory is a no-op",
			path: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			require.NoError(t, EnsureDir(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestEnsurePrivateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private")
	require.NoError(t, EnsurePrivateDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(DirModePrivate), info.Mode().Perm())
	}
}

func TestEnsureFileDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "deep", "cache.db")
	require.NoError(t, EnsureFileDir(file))

	info, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
