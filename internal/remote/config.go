package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	v1 "github.com/inovacc/fieldlog/internal/api/v1"
)

const defaultConnectTimeout = 5 * time.Second

// Config is the parsed connection configuration an administrator pastes into
// the settings. Unknown keys are ignored.
type Config struct {
	// Endpoint is the relay address, host:port
	Endpoint string `json:"endpoint"`

	// ProjectID scopes the shared document on a relay serving several teams
	ProjectID string `json:"projectId,omitempty"`

	// Timeout bounds the initial health check, e.g. "5s"
	Timeout string `json:"timeout,omitempty"`

	connectTimeout time.Duration
}

// ParseConfig parses a pasted connection configuration. An empty string
// yields ErrNoConfig; anything else that is not usable yields *ConfigError.
func ParseConfig(raw string) (Config, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Config{}, ErrNoConfig
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, &ConfigError{Err: err}
	}

	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return Config{}, &ConfigError{Err: errors.New("endpoint is required")}
	}

	cfg.connectTimeout = defaultConnectTimeout

	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return Config{}, &ConfigError{Err: fmt.Errorf("timeout: %w", err)}
		}

		if d <= 0 {
			return Config{}, &ConfigError{Err: fmt.Errorf("timeout must be positive, got %s", d)}
		}

		cfg.connectTimeout = d
	}

	return cfg, nil
}

// Ref returns the fixed identity of the shared document.
func (c Config) Ref() *v1.DocumentRef {
	return v1.NewRef(c.ProjectID)
}

// ConnectTimeout returns the health check deadline.
func (c Config) ConnectTimeout() time.Duration {
	if c.connectTimeout <= 0 {
		return defaultConnectTimeout
	}

	return c.connectTimeout
}
