package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "timetrack/internal/platform/errors"
)

// Settings is the user-editable configuration persisted next to the database.
type Settings struct {
	ActiveTimeoutSeconds  uint64 `yaml:"active_timeout_seconds"`
	UserID                int64  `yaml:"user_id"`
	PollIntervalMS        uint64 `yaml:"poll_interval_ms"`
	ActivityDebounceMS    uint64 `yaml:"activity_debounce_ms"`
	RetryIntervalSeconds  uint64 `yaml:"retry_interval_seconds"`
	MaxSaveAttempts       int    `yaml:"max_save_attempts"`
	StartCountsAsActivity bool   `yaml:"start_counts_as_activity"`
	LogLevel              string `yaml:"log_level"`
	LogFile               string `yaml:"log_file"`
}

func DefaultSettings() Settings {
	return Settings{
		ActiveTimeoutSeconds: 15,
		UserID:               1,
		PollIntervalMS:       100,
		ActivityDebounceMS:   1000,
		RetryIntervalSeconds: 30,
		MaxSaveAttempts:      5,
		LogLevel:             "info",
	}
}

func (s Settings) Validate() error {
	if s.ActiveTimeoutSeconds == 0 {
		return fmt.Errorf("%w: active_timeout_seconds must be positive", apperrors.ErrInvalidInput)
	}
	if s.PollIntervalMS == 0 {
		return fmt.Errorf("%w: poll_interval_ms must be positive", apperrors.ErrInvalidInput)
	}
	if s.RetryIntervalSeconds == 0 {
		return fmt.Errorf("%w: retry_interval_seconds must be positive", apperrors.ErrInvalidInput)
	}
	if s.MaxSaveAttempts < 1 {
		return fmt.Errorf("%w: max_save_attempts must be at least 1", apperrors.ErrInvalidInput)
	}
	if s.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}

func (s Settings) ActiveTimeout() time.Duration {
	return time.Duration(s.ActiveTimeoutSeconds) * time.Second
}

func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

func (s Settings) ActivityDebounce() time.Duration {
	return time.Duration(s.ActivityDebounceMS) * time.Millisecond
}

func (s Settings) RetryInterval() time.Duration {
	return time.Duration(s.RetryIntervalSeconds) * time.Second
}

// LoadSettings reads settings from path. A missing file yields the defaults,
// which are written back so the user has a file to edit. Keys absent from an
// existing file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	payload, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
		if err := SaveSettings(path, settings); err != nil {
			return Settings{}, err
		}
		return settings, nil
	}
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
