package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Path returns ~/.config/qrdeck/config.yaml, or "" if there is no home dir.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qrdeck", "config.yaml")
}

// Load loads configuration from ~/.config/qrdeck/config.yaml.
func Load() Config {
	return LoadFrom(Path())
}

// LoadFrom reads path over the defaults. A missing or invalid file leaves
// the defaults in place.
func LoadFrom(path string) Config {
	cfg := DefaultConfig()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	parsed := cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}
	return parsed.normalize(cfg)
}

// normalize replaces out-of-range values with the defaults and expands ~.
func (c Config) normalize(def Config) Config {
	switch c.Storage {
	case "sqlite", "file", "memory":
	default:
		c.Storage = def.Storage
	}
	switch c.RecoveryLevel {
	case "low", "medium", "high", "highest":
	default:
		c.RecoveryLevel = def.RecoveryLevel
	}
	if c.MaxScansPerSecond <= 0 {
		c.MaxScansPerSecond = def.MaxScansPerSecond
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.QRSize <= 0 {
		c.QRSize = def.QRSize
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	c.DataDir = expandHome(c.DataDir)
	c.CameraDir = expandHome(c.CameraDir)
	c.DownloadDir = expandHome(c.DownloadDir)
	c.LogFile = expandHome(c.LogFile)
	return c
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
