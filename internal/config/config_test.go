package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"VTSGO_CONFIG", "VTSGO_URL", "VTSGO_PLUGIN_NAME",
		"VTSGO_PLUGIN_DEVELOPER", "VTSGO_LOGO", "VTSGO_HOME_DIR", "VTSGO_DEBUG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("VTSGO_HOME_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:8001", cfg.URL)
	require.Equal(t, "vtsctl", cfg.PluginName)
	require.Equal(t, "vtsgo", cfg.PluginDeveloper)
	require.False(t, cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("VTSGO_HOME_DIR", home)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
url = "ws://192.168.1.20:8001"
plugin_name = "OverlayHelper"
plugin_developer = "Acme"
debug = true
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ws://192.168.1.20:8001", cfg.URL)
	require.Equal(t, "OverlayHelper", cfg.PluginName)
	require.Equal(t, "Acme", cfg.PluginDeveloper)
	require.True(t, cfg.Debug)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("VTSGO_HOME_DIR", home)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`plugin_name = "FromFile"`), 0o644))

	t.Setenv("VTSGO_PLUGIN_NAME", "FromEnv")
	t.Setenv("VTSGO_DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "FromEnv", cfg.PluginName)
	require.True(t, cfg.Debug)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("VTSGO_HOME_DIR", home)

	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`url = [not toml`), 0o644))

	_, err := Load()
	require.Error(t, err)
}
