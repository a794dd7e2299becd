package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Theme             string        `yaml:"theme"`
	Storage           string        `yaml:"storage"`
	DataDir           string        `yaml:"data_dir"`
	CameraDir         string        `yaml:"camera_dir"`
	MaxScansPerSecond int           `yaml:"max_scans_per_second"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	QRSize            int           `yaml:"qr_size"`
	RecoveryLevel     string        `yaml:"recovery_level"`
	DownloadDir       string        `yaml:"download_dir"`
	ShareCommand      string        `yaml:"share_command"`
	LogFile           string        `yaml:"log_file"`
	LogLevel          string        `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	dataDir := defaultDataDir()
	return Config{
		Theme:             "catppuccin-mocha",
		Storage:           "sqlite",
		DataDir:           dataDir,
		CameraDir:         filepath.Join(dataDir, "frames"),
		MaxScansPerSecond: 5,
		PollInterval:      250 * time.Millisecond,
		QRSize:            256,
		RecoveryLevel:     "medium",
		DownloadDir:       ".",
		ShareCommand:      "",
		LogFile:           "",
		LogLevel:          "info",
	}
}

// LogPath returns where the TUI writes its log.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "qrdeck.log")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "qrdeck")
	}
	return filepath.Join(home, ".local", "share", "qrdeck")
}
