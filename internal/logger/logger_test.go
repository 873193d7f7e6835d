package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/bankalerts/internal/logger"
)

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, slog.LevelInfo)
	l.Debug("hidden")
	l.Info("dispatched", slog.String("kind", "account_event"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatched", entry["msg"])
	assert.Equal(t, "account_event", entry["kind"])
	assert.Equal(t, "bankalerts", entry["service"])
}

func TestNewSystemLogger_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, closer, err := logger.NewSystemLogger(dir, slog.LevelDebug)
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, logger.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewSystemLogger_Stderr(t *testing.T) {
	l, closer, err := logger.NewSystemLogger("", slog.LevelInfo)
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.NoError(t, closer.Close())
}
