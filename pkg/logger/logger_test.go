package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture swaps the package output for a buffer and restores it, along
// with the level, when the test finishes.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logger
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		logger = orig
		Init("info")
	})
	return &buf
}

func TestInitNormalizesLevelNames(t *testing.T) {
	t.Cleanup(func() { Init("info") })

	for input, want := range map[string]string{
		"debug":    "debug",
		"  DEBUG ": "debug",
		"Warn":     "warn",
		"warning":  "warn",
		"error":    "error",
		"fatal":    "fatal",
		"":         "info",
		"verbose":  "info",
	} {
		Init(input)
		assert.Equal(t, want, LevelString(), "Init(%q)", input)
	}
}

func TestThresholdSuppressesLowerLevels(t *testing.T) {
	buf := capture(t)

	Init("error")
	Debugf("collection %s loaded", "skills")
	Infof("listening on :%d", 8090)
	Warnf("redis unavailable, falling back")
	Errorf("mongo dial failed: %v", assert.AnError)

	out := buf.String()
	assert.NotContains(t, out, "collection skills loaded")
	assert.NotContains(t, out, "listening on :8090")
	assert.NotContains(t, out, "redis unavailable")
	assert.Contains(t, out, "mongo dial failed")
}

func TestOutputCarriesLevelTag(t *testing.T) {
	buf := capture(t)

	Init("debug")
	Warnf("draft discarded")

	require.Contains(t, buf.String(), "[WARN] draft discarded")
}

func TestStringHelpersAndPrintln(t *testing.T) {
	buf := capture(t)

	Init("debug")
	Debug("one")
	Info("two")
	Warn("three")
	Error("four")
	Println("five", "six")

	out := buf.String()
	for _, word := range []string{"one", "two", "three", "four", "five six"} {
		assert.Contains(t, out, word)
	}

	// Println rides the info level, so a warn threshold drops it
	buf.Reset()
	Init("warn")
	Println("quiet")
	assert.NotContains(t, buf.String(), "quiet")
}
