// Package cache is the durable on-device copy of the application document.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inovacc/fieldlog/internal/database"
	"github.com/inovacc/fieldlog/internal/model"
)

// Key is the slot holding the serialized document.
const Key = "document"

// ErrNotFound is returned by Read before the first Write.
var ErrNotFound = errors.New("cache: no document stored")

// Local stores the whole document under a single key. Every Write replaces
// the previous value; there is no history.
type Local struct {
	db database.Store
}

func New(db database.Store) *Local {
	return &Local{db: db}
}

// Read returns the raw bytes last written. They are not decoded here so that
// the caller can run them through migrate.Migrate.
func (l *Local) Read() (json.RawMessage, error) {
	v, err := l.db.Get(Key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("cache: read document: %w", err)
	}

	return v, nil
}

// Write persists doc. When Write returns nil the document survives a crash.
func (l *Local) Write(doc model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode document: %w", err)
	}

	if err := l.db.Put(Key, data); err != nil {
		return fmt.Errorf("cache: write document: %w", err)
	}

	return nil
}
