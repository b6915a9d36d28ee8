package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/marmotbyte/stash/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv points the CLI at a config file whose cache lives in a
// temporary directory and returns that directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfgPath := filepath.Join(dir, "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Settings.CacheDir = cacheDir
	require.NoError(t, cfg.SaveConfig(cfgPath))

	verbose := false
	output := ""
	ConfigPath = &cfgPath
	Verbose = &verbose
	OutputFormat = &output
	t.Cleanup(func() {
		ConfigPath = nil
		Verbose = nil
		OutputFormat = nil
	})

	return cacheDir
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSetAndGetCommands(t *testing.T) {
	setupTestEnv(t)

	out, err := runCommand(t, NewSetCmd(), "pkg:firefox", `{"name":"firefox"}`, "--ttl", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, `Stored "pkg:firefox"`)

	out, err = runCommand(t, NewGetCmd(), "pkg:firefox")
	require.NoError(t, err)
	assert.Contains(t, out, `{"name":"firefox"}`)
}

func TestGetCommandMissingKey(t *testing.T) {
	setupTestEnv(t)

	_, err := runCommand(t, NewGetCmd(), "absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStatsCommand(t *testing.T) {
	setupTestEnv(t)

	_, err := runCommand(t, NewSetCmd(), "key", "value")
	require.NoError(t, err)

	out, err := runCommand(t, NewStatsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Cache Information:")
	assert.Contains(t, out, "Disk:")
}

func TestStatsCommandJSON(t *testing.T) {
	setupTestEnv(t)
	jsonFormat := "json"
	OutputFormat = &jsonFormat

	out, err := runCommand(t, NewStatsCmd())
	require.NoError(t, err)
	assert.Contains(t, out, `"disk_entries"`)
	assert.Contains(t, out, `"memory_entries"`)
}

func TestDeleteCommand(t *testing.T) {
	setupTestEnv(t)

	_, err := runCommand(t, NewSetCmd(), "key", "value")
	require.NoError(t, err)

	out, err := runCommand(t, NewDeleteCmd(), "key")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "key"`)

	out, err = runCommand(t, NewDeleteCmd(), "key")
	require.NoError(t, err)
	assert.Contains(t, out, "was not cached")
}

func TestDeletePrefixCommand(t *testing.T) {
	setupTestEnv(t)

	for _, key := range []string{"search:a", "search:b", "pkg:c"} {
		_, err := runCommand(t, NewSetCmd(), key, "value")
		require.NoError(t, err)
	}

	out, err := runCommand(t, NewDeleteCmd(), "search:", "--prefix")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted 2 entries with prefix "search:"`)
}

func TestClearCommand(t *testing.T) {
	setupTestEnv(t)

	_, err := runCommand(t, NewSetCmd(), "key", "value")
	require.NoError(t, err)

	out, err := runCommand(t, NewClearCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully cleared cache")

	out, err = runCommand(t, NewClearCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is already empty.")
}

func TestPruneAndVacuumCommands(t *testing.T) {
	setupTestEnv(t)

	out, err := runCommand(t, NewPruneCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "No expired entries to prune.")

	out, err = runCommand(t, NewVacuumCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Vacuum complete")
}

func TestInvalidateCommand(t *testing.T) {
	setupTestEnv(t)

	out, err := runCommand(t, NewInvalidateCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "All cache entries invalidated.")
}

func TestDirCommand(t *testing.T) {
	cacheDir := setupTestEnv(t)

	out, err := runCommand(t, NewDirCmd())
	require.NoError(t, err)
	assert.Contains(t, out, cacheDir)
}

func TestConfigShowCommand(t *testing.T) {
	cacheDir := setupTestEnv(t)

	out, err := runCommand(t, NewConfigCmd(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "cache_dir: "+cacheDir)
	assert.Contains(t, out, "memory_capacity: 1000")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, NewVersionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "stash version")
}
