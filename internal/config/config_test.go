package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SITEMAP_CONFIG", "")
	t.Chdir(t.TempDir()) // no stray .env
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sitemap", "sitemap.db"), cfg.DB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 200, cfg.History.Limit)
	assert.Equal(t, 1.5, cfg.Canvas.HitRadius)
	assert.Equal(t, 400, cfg.Canvas.DoubleTapMS)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SITEMAP_DB", "/tmp/x.db")
	t.Setenv("SITEMAP_HISTORY_LIMIT", "50")
	t.Setenv("SITEMAP_CABLE_PREFERRED_COLOR", "#4363d8")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DB)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, "#4363d8", cfg.Cable.PreferredColor)
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SITEMAP_DB", "/tmp/env.db")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db", "/tmp/flag.db", "--log-level", "debug"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sitemap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history:\n  limit: 10\ncanvas:\n  hit_radius: 2.5\n"), 0o644))
	require.NoError(t, os.WriteFile(".env", []byte("SITEMAP_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("SITEMAP_CONFIG", cfgPath)
	t.Cleanup(func() { os.Unsetenv("SITEMAP_LOG_LEVEL") })

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, 2.5, cfg.Canvas.HitRadius)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("SITEMAP_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		DB:      "x.db",
		Log:     LogConfig{Level: "loud"},
		History: HistoryConfig{Limit: -1},
		Cable:   CableConfig{PreferredColor: "red"},
		Canvas:  CanvasConfig{HitRadius: 0, DoubleTapMS: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"log.level", "history.limit", "preferred_color", "hit_radius", "double_tap_ms"} {
		assert.Contains(t, err.Error(), want)
	}
}
