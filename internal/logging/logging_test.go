package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jot.log")

	logger, closeLog, err := New(path, zapcore.InfoLevel)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Warn("list todos failed", zap.String("url", "http://localhost:3000/api/"))
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "list todos failed", entry["msg"])
	require.Equal(t, "http://localhost:3000/api/", entry["url"])
	require.Contains(t, entry, "ts")
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, closeLog, err := New("", zapcore.DebugLevel)
	require.NoError(t, err)
	logger.Info("dropped")
	closeLog()
}
