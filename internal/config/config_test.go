package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvConfigPath, "IOTDASH_COUNT", "IOTDASH_PAGE_SIZE", "IOTDASH_EXPORT_DIR", "IOTDASH_LOG_FILE", "IOTDASH_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	// keep godotenv away from any .env in the package directory
	t.Chdir(t.TempDir())
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 1000, cfg.Count)
	require.Equal(t, 10, cfg.PageSize)
	require.Equal(t, ".", cfg.ExportDir)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)
}

func TestYAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "iotdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 250\npage_size: 25\nlog_level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.Count)
	require.Equal(t, 25, cfg.PageSize)

	t.Setenv("IOTDASH_PAGE_SIZE", "15")
	t.Setenv("IOTDASH_EXPORT_DIR", "/tmp/exports")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 250, cfg.Count)
	require.Equal(t, 15, cfg.PageSize)
	require.Equal(t, "/tmp/exports", cfg.ExportDir)
}

func TestConfigPathFromEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 42\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 42, cfg.Count)
}

func TestDotEnv(t *testing.T) {
	clearEnv(t)
	// clearEnv set IOTDASH_COUNT to "", which godotenv treats as already
	// defined; unset it so the .env value applies.
	require.NoError(t, os.Unsetenv("IOTDASH_COUNT"))
	t.Cleanup(func() { os.Unsetenv("IOTDASH_COUNT") })

	require.NoError(t, os.WriteFile(".env", []byte("IOTDASH_COUNT=77\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 77, cfg.Count)
}

func TestInvalid(t *testing.T) {
	clearEnv(t)

	t.Setenv("IOTDASH_PAGE_SIZE", "zero")
	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("IOTDASH_PAGE_SIZE", "0")
	_, err = Load("")
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("IOTDASH_PAGE_SIZE", "")
	t.Setenv("IOTDASH_LOG_LEVEL", "loud")
	_, err = Load("")
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMalformedDotEnv(t *testing.T) {
	clearEnv(t)

	require.NoError(t, os.WriteFile(".env", []byte("IOTDASH_COUNT=\"77\n"), 0o644))

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), ".env")
}
