// Package config loads the fieldlog INI configuration.
//
// A missing file is not an error: every key has a default rooted in Dir. Command-line flags override what is loaded here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"

	"github.com/inovacc/fieldlog/internal/database"
)

type CacheSection struct {
	Backend string `ini:"backend"`
	Path    string `ini:"path"`
}

type LogSection struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

type SyncSection struct {
	// Wait bounds how long commands wait for the first remote snapshot
	Wait        time.Duration `ini:"wait"`
	PushTimeout time.Duration `ini:"push_timeout"`
}

type RelaySection struct {
	Listen      string        `ini:"listen"`
	Backend     string        `ini:"backend"`
	Path        string        `ini:"path"`
	IdleTimeout time.Duration `ini:"idle_timeout"`
}

type Config struct {
	Cache CacheSection `ini:"cache"`
	Log   LogSection   `ini:"log"`
	Sync  SyncSection  `ini:"sync"`
	Relay RelaySection `ini:"relay"`
}

// Default returns the configuration used when no file exists. Data files
// live in dir.
func Default(dir string) *Config {
	return &Config{
		Cache: CacheSection{
			Backend: string(database.BackendBolt),
			Path:    filepath.Join(dir, "fieldlog.db"),
		},
		Log: LogSection{
			Level:  "info",
			Format: "text",
		},
		Sync: SyncSection{
			Wait:        5 * time.Second,
			PushTimeout: 10 * time.Second,
		},
		Relay: RelaySection{
			Listen:  "127.0.0.1:7070",
			Backend: string(database.BackendBolt),
			Path:    filepath.Join(dir, "relay.db"),
		},
	}
}

// Load reads path over the defaults for dir.
func Load(path, dir string) (*Config, error) {
	cfg := Default(dir)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := file.MapTo(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the enumerated keys.
func (c *Config) Validate() error {
	for key, backend := range map[string]string{"cache.backend": c.Cache.Backend, "relay.backend": c.Relay.Backend} {
		switch database.Backend(backend) {
		case database.BackendBolt, database.BackendSQLite, database.BackendMemory:
		default:
			return fmt.Errorf("%s: unknown backend %q", key, backend)
		}
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: want text or json, got %q", c.Log.Format)
	}

	if c.Sync.Wait < 0 || c.Sync.PushTimeout < 0 || c.Relay.IdleTimeout < 0 {
		return errors.New("durations must not be negative")
	}

	return nil
}

// LogLevel parses the log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	file := ini.Empty()
	if err := ini.ReflectFrom(file, c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}

	return nil
}
