package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timetrack/internal/platform/errors"
)

func TestNewDerivesPaths(t *testing.T) {
	t.Parallel()
	cfg, err := New("/tmp/tt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/tt", "sessions.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/tmp/tt", "settings.yaml"), cfg.SettingsPath)
	assert.Equal(t, filepath.Join("/tmp/tt", "timetrack.log"), cfg.LogPath)

	_, err = New("")
	assert.Error(t, err)
}

func TestLoadSettingsMissingWritesDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
	assert.FileExists(t, path)

	again, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, again)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("active_timeout_seconds: 60\nstart_counts_as_activity: true\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, settings.ActiveTimeout())
	assert.True(t, settings.StartCountsAsActivity)
	assert.Equal(t, int64(1), settings.UserID)
	assert.Equal(t, 100*time.Millisecond, settings.PollInterval())
	assert.Equal(t, 30*time.Second, settings.RetryInterval())
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("active_timeout_seconds: [1, 2"), 0o644))
	_, err := LoadSettings(broken)
	assert.Error(t, err)

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("active_timeout_seconds: 0\n"), 0o644))
	_, err = LoadSettings(zero)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
}
