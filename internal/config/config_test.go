package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "absent.ini"), dir)
	require.NoError(t, err)

	assert.Equal(t, Default(dir), cfg)
	assert.Equal(t, filepath.Join(dir, "fieldlog.db"), cfg.Cache.Path)
	assert.Equal(t, 5*time.Second, cfg.Sync.Wait)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fieldlog.ini")

	content := `[cache]
backend = sqlite
path = /var/lib/fieldlog/cache.sqlite

[log]
level = debug
format = json

[sync]
wait = 2s
push_timeout = 1m

[relay]
listen = 0.0.0.0:9000
idle_timeout = 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, "/var/lib/fieldlog/cache.sqlite", cfg.Cache.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.Sync.Wait)
	assert.Equal(t, time.Minute, cfg.Sync.PushTimeout)
	assert.Equal(t, "0.0.0.0:9000", cfg.Relay.Listen)
	assert.Equal(t, 30*time.Minute, cfg.Relay.IdleTimeout)

	// keys absent from the file keep their defaults
	assert.Equal(t, "bolt", cfg.Relay.Backend)
	assert.Equal(t, filepath.Join(dir, "relay.db"), cfg.Relay.Path)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"backend": "[cache]\nbackend = mongo\n",
		"level":   "[log]\nlevel = loud\n",
		"format":  "[log]\nformat = xml\n",
		"syntax":  "[cache\nbackend = bolt\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "fieldlog.ini")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := Load(path, dir)
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fieldlog.ini")

	cfg := Default(dir)
	cfg.Log.Level = "warn"
	cfg.Relay.IdleTimeout = time.Hour

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultPath(t *testing.T) {
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, AppName, filepath.Base(dir))

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fieldlog.ini"), path)
}
