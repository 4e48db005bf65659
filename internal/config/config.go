package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// URL is the VTube Studio API endpoint.
	URL string
	// PluginName identifies the plugin to the host.
	PluginName string
	// PluginDeveloper identifies the plugin author to the host.
	PluginDeveloper string
	// LogoPath points at an optional base64-encoded logo file shown in the
	// VTube Studio permission prompt.
	LogoPath string
	// HomeDir is the directory for persisted tokens.
	HomeDir string
	// Debug enables verbose logging.
	Debug bool
}

// fileConfig is the TOML shape of an optional config file.
type fileConfig struct {
	URL             string `toml:"url"`
	PluginName      string `toml:"plugin_name"`
	PluginDeveloper string `toml:"plugin_developer"`
	LogoPath        string `toml:"logo_path"`
	HomeDir         string `toml:"home_dir"`
	Debug           bool   `toml:"debug"`
}

// Load builds the CLI configuration. Precedence, lowest to highest:
// built-in defaults, the config file (VTSGO_CONFIG or ~/.vtsgo/config.toml
// when present), then VTSGO_* environment variables.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	vtsHome := os.Getenv("VTSGO_HOME_DIR")
	if vtsHome == "" {
		vtsHome = filepath.Join(homeDir, ".vtsgo")
	}

	cfg := &Config{
		URL:             "ws://localhost:8001",
		PluginName:      "vtsctl",
		PluginDeveloper: "vtsgo",
		HomeDir:         vtsHome,
	}

	path := os.Getenv("VTSGO_CONFIG")
	if path == "" {
		candidate := filepath.Join(vtsHome, "config.toml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("VTSGO_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("VTSGO_PLUGIN_NAME"); v != "" {
		cfg.PluginName = v
	}
	if v := os.Getenv("VTSGO_PLUGIN_DEVELOPER"); v != "" {
		cfg.PluginDeveloper = v
	}
	if v := os.Getenv("VTSGO_LOGO"); v != "" {
		cfg.LogoPath = v
	}
	if v := os.Getenv("VTSGO_HOME_DIR"); v != "" {
		cfg.HomeDir = v
	}
	if v := os.Getenv("VTSGO_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config file (%s): %w", path, err)
	}

	if meta.IsDefined("url") && strings.TrimSpace(raw.URL) != "" {
		cfg.URL = strings.TrimSpace(raw.URL)
	}
	if meta.IsDefined("plugin_name") && strings.TrimSpace(raw.PluginName) != "" {
		cfg.PluginName = strings.TrimSpace(raw.PluginName)
	}
	if meta.IsDefined("plugin_developer") && strings.TrimSpace(raw.PluginDeveloper) != "" {
		cfg.PluginDeveloper = strings.TrimSpace(raw.PluginDeveloper)
	}
	if meta.IsDefined("logo_path") {
		cfg.LogoPath = strings.TrimSpace(raw.LogoPath)
	}
	if meta.IsDefined("home_dir") && strings.TrimSpace(raw.HomeDir) != "" {
		cfg.HomeDir = strings.TrimSpace(raw.HomeDir)
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	return nil
}
