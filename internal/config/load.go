package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable consulted when --config is not given.
const EnvConfig = "HEIGHTSCAPE_CONFIG"

// Load builds the config from defaults, then a YAML file, then flags.
// Relative asset directories in the file resolve against the file's directory.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.resolveAssetDirs(filepath.Dir(path))
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath picks --config, then $HEIGHTSCAPE_CONFIG, then the first
// file found in the standard locations.
func resolveConfigPath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return findConfigFile()
}

func findConfigFile() string {
	candidates := []string{
		"./heightscape.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Heightscape")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Heightscape")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "heightscape")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "heightscape")
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) resolveAssetDirs(base string) {
	for i, dir := range c.Data.AssetDirs {
		if !filepath.IsAbs(dir) {
			c.Data.AssetDirs[i] = filepath.Join(base, dir)
		}
	}
}
