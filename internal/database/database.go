package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key was never written.
var ErrNotFound = errors.New("key not found")

// Backend names a Store implementation.
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Store defines the slot operations used by the app.
type Store interface {
	Ping() error
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Keys() ([]string, error)
	Close() error
}

// Open opens the store for backend at path. path is ignored by the memory
// backend.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendBolt, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	if path == "" {
		return nil, fmt.Errorf("%s backend requires a path", backend)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	if backend == BackendSQLite {
		return NewSQLite(path)
	}

	return NewBolt(path)
}
