package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dfloer/OpenCity2k"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sc2k.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultDB, cfg.DB)
	assert.Equal(t, int64(opencity2k.DefaultCacheSize), cfg.CacheSize)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
db: " cities.db "
workers: 4
cache_size: 16
log_file: /tmp/sc2k.log
log_level: DEBUG
legacy_thumbnail_border: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		DB:                    "cities.db",
		Workers:               4,
		CacheSize:             16,
		LogFile:               "/tmp/sc2k.log",
		LogLevel:              "debug",
		LogSizeMB:             defaultLogSizeMB,
		LogBackups:            defaultLogFiles,
		LegacyThumbnailBorder: true,
	}, cfg)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())
}

func TestLoadInvalid(t *testing.T) {
	tables := []struct {
		name string
		body string
	}{
		{"workers", "workers: -1"},
		{"cache", "cache_size: -5"},
		{"level", "log_level: loud"},
		{"log size", "log_size_mb: -1"},
		{"backups", "log_backups: -1"},
		{"yaml", "workers: [1"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, table.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidateZeroAllowed(t *testing.T) {
	c := defaults()
	c.CacheSize = -5
	assert.EqualError(t, c.Validate(), "cache_size must be >= 0, got -5")

	c = defaults()
	c.LogSizeMB = -1
	assert.EqualError(t, c.Validate(), "log_size_mb must be >= 0, got -1")

	// Zero selects the default
	c, err := Load(writeConfig(t, "cache_size: 0\nlog_size_mb: 0"))
	require.NoError(t, err)
	assert.Equal(t, int64(opencity2k.DefaultCacheSize), c.CacheSize)
	assert.Equal(t, defaultLogSizeMB, c.LogSizeMB)
}
