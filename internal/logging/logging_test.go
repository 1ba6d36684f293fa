package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		level, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, level, name)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNewFiltersByLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(&buffer, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "kind", "task")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "msg=shown kind=task")
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "timeflo.log")

	logger, closer, err := Setup("debug", path)
	require.NoError(t, err)
	logger.Debug("interval event", "type", "interval_started")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "interval_started")
}
