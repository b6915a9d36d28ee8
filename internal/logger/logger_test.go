package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, log func()) string {
	t.Helper()

	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger(level)
	defer InitLogger("info")

	log()
	return buf.String()
}

func TestInfoWithFields(t *testing.T) {
	out := captureOutput(t, "info", func() {
		Info("cache opened", Fields{"path": "/tmp/cache.db"})
	})

	assert.Contains(t, out, "cache opened")
	assert.Contains(t, out, "path=/tmp/cache.db")
	assert.Contains(t, out, "level=INFO")
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	out := captureOutput(t, "info", func() {
		Debug("should not appear")
	})

	assert.Empty(t, out)
}

func TestDebugShownAtDebugLevel(t *testing.T) {
	out := captureOutput(t, "debug", func() {
		Debugf("pruned %d entries", 3)
	})

	assert.Contains(t, out, "pruned 3 entries")
	assert.Contains(t, out, "level=DEBUG")
}

func TestWarnAndError(t *testing.T) {
	out := captureOutput(t, "warn", func() {
		Warn("promotion failed")
		Errorf("open failed: %s", "disk unavailable")
	})

	assert.Contains(t, out, "promotion failed")
	assert.Contains(t, out, "open failed: disk unavailable")
}

func TestSuccessAddsStatusField(t *testing.T) {
	out := captureOutput(t, "info", func() {
		Success("cache cleared")
	})

	assert.Contains(t, out, "cache cleared")
	assert.Contains(t, out, "status=success")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	out := captureOutput(t, "nonsense", func() {
		Info("still logs")
		Debug("still suppressed")
	})

	assert.Contains(t, out, "still logs")
	assert.NotContains(t, out, "still suppressed")
}
