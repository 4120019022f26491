package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "timetrack"

type Config struct {
	DataDir      string
	DBPath       string
	SettingsPath string
	// LogPath is used when the terminal UI owns stdout and no log file is set.
	LogPath string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "sessions.db"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
		LogPath:      filepath.Join(dataDir, "timetrack.log"),
	}, nil
}

// DefaultDataDir resolves the per-user config directory, falling back to the
// working directory when the platform has none.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDirName)
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "."+appDirName)
	}
	return "." + appDirName
}
