package remote

import (
	"errors"
	"fmt"
)

// ErrNoConfig means no connection configuration is set: local-only mode.
var ErrNoConfig = errors.New("no connection configuration")

// ConfigError indicates an unusable connection configuration
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid connection configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failed exchange with the relay
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
