package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Nominatim.BaseURL)
	assert.Equal(t, "us", cfg.Nominatim.CountryCodes)
	assert.Equal(t, 1100, cfg.Nominatim.RateIntervalMS)
	assert.Equal(t, 1100*time.Millisecond, cfg.Nominatim.RateInterval())
	assert.Equal(t, 10*time.Second, cfg.Nominatim.Timeout())
	assert.True(t, cfg.Search.Enabled)
	assert.Equal(t, "https://html.duckduckgo.com/html/", cfg.Search.BaseURL)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "New Orleans", cfg.Locale.City)
	assert.Equal(t, "Louisiana", cfg.Locale.Region)
	assert.Equal(t, "nopd_import_2026-02-27", cfg.Import.BatchTag)
	assert.Equal(t, "nopd", cfg.Import.CameraType)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
nominatim:
  rate_interval_ms: 500
search:
  enabled: false
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Nominatim.RateIntervalMS)
	assert.False(t, cfg.Search.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "New Orleans", cfg.Locale.City)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("CAMIMPORT_LOCALE_CITY", "Baton Rouge")
	t.Setenv("CAMIMPORT_IMPORT_BATCH_TAG", "nopd_import_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Baton Rouge", cfg.Locale.City)
	assert.Equal(t, "nopd_import_test", cfg.Import.BatchTag)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
