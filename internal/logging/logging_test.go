package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("generated readings", slog.Int("count", 10))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "generated readings")
	require.Contains(t, out, "count=10")
	require.NotContains(t, out, "\x1b[", "non-terminal output must be uncoloured")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iotdash.log")
	log, closer, err := OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)

	log.Debug("export written", slog.String("path", "x.csv"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "export written")
}

func TestOpenFileError(t *testing.T) {
	_, _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"), slog.LevelInfo)
	require.Error(t, err)
}
