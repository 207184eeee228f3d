package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, defaultStatsWindowDays, cfg.StatsWindowDays)
	assert.True(t, strings.HasPrefix(cfg.CachePath, home), "cache path %q not under HOME", cfg.CachePath)
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "  https://api.smokefree.test  "
cache_path = " ~/smoke/cache.db "
request_timeout = "3s"
log_level = "debug"
stats_window_days = 30
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.smokefree.test", cfg.APIURL)
	assert.Equal(t, filepath.Join(home, "smoke", "cache.db"), cfg.CachePath)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 30, cfg.StatsWindowDays)
}

func TestLoad_EmptyFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(path, []byte(`api_url = ""
stats_window_days = 0
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, cfg.APIURL)
	assert.Equal(t, defaultStatsWindowDays, cfg.StatsWindowDays)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"timeout": `request_timeout = "soon"`,
		"level":   `log_level = "loud"`,
		"syntax":  `api_url = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "device.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a", "b"), got)

	_, err = expandPath("   ")
	assert.Error(t, err)
}
