// Package migrate normalizes any previously persisted document blob into the
// canonical model.Document shape.
package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/fieldlog/internal/model"
)

// LegacyTechnicianPassword is given to technicians migrated from the
// name-only shape when the blob has no techPassword.
const LegacyTechnicianPassword = "tech"

// ErrMixedTechnicians reports a legacy technician list whose entries are not
// all plain names. That shape is unsupported and the defaults are kept.
var ErrMixedTechnicians = errors.New("technician list mixes names and records")

// Migrate returns the canonical document for raw. Defaults fill every field
// raw lacks, fields present in raw win one by one, and a legacy technician
// list of plain names is converted to credentialed records. Migrate never
// fails: malformed fields keep their default and are logged.
func Migrate(raw []byte) model.Document {
	doc := model.DefaultDocument()

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return doc
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		slog.Warn("migrate: document is not a JSON object, using defaults", "error", err)
		return doc
	}

	overlay(fields, "projects", &doc.Projects)
	overlay(fields, "vehicles", &doc.Vehicles)
	overlay(fields, "reports", &doc.Reports)

	if !overlay(fields, "connectionConfig", &doc.ConnectionConfig) {
		overlay(fields, "firebaseConfig", &doc.ConnectionConfig)
	}

	if v, ok := present(fields, "technicians"); ok {
		var legacyPassword string
		overlay(fields, "techPassword", &legacyPassword)

		if legacyPassword == "" {
			legacyPassword = LegacyTechnicianPassword
		}

		techs, err := technicians(v, legacyPassword)
		if err != nil {
			slog.Warn("migrate: keeping default technicians", "error", err)
		} else {
			doc.Technicians = techs
		}
	}

	doc.AdminPassword = model.DefaultAdminPassword

	var admin string
	if overlay(fields, "adminPassword", &admin) && admin != "" {
		doc.AdminPassword = admin
	}

	return normalize(doc)
}

// technicians decodes either the canonical record list or the legacy list of
// names. The first element decides which shape the whole list has.
func technicians(raw json.RawMessage, legacyPassword string) ([]model.TechUser, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("technicians: %w", err)
	}

	if len(items) == 0 {
		return []model.TechUser{}, nil
	}

	first := bytes.TrimSpace(items[0])
	if len(first) == 0 || first[0] != '"' {
		var techs []model.TechUser
		if err := json.Unmarshal(raw, &techs); err != nil {
			return nil, fmt.Errorf("technicians: %w", err)
		}

		return techs, nil
	}

	techs := make([]model.TechUser, 0, len(items))

	for i, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			return nil, fmt.Errorf("technicians[%d]: %w", i, ErrMixedTechnicians)
		}

		techs = append(techs, model.TechUser{
			ID:       fmt.Sprintf("migrated-%d", i),
			Name:     name,
			Password: legacyPassword,
		})
	}

	return techs, nil
}

// present returns the raw value of key unless it is missing or null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := fields[key]
	if !ok {
		return nil, false
	}

	if t := bytes.TrimSpace(v); len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return nil, false
	}

	return v, true
}

// overlay decodes fields[key] into dst. dst is left alone when the key is
// absent or does not decode into T. It reports whether dst was replaced.
func overlay[T any](fields map[string]json.RawMessage, key string, dst *T) bool {
	v, ok := present(fields, key)
	if !ok {
		return false
	}

	var val T
	if err := json.Unmarshal(v, &val); err != nil {
		slog.Warn("migrate: ignoring malformed field", "field", key, "error", err)
		return false
	}

	*dst = val

	return true
}

// normalize replaces nil lists so the document always serializes with
// explicit empty lists.
func normalize(doc model.Document) model.Document {
	if doc.Technicians == nil {
		doc.Technicians = []model.TechUser{}
	}

	if doc.Projects == nil {
		doc.Projects = []string{}
	}

	if doc.Vehicles == nil {
		doc.Vehicles = []string{}
	}

	if doc.Reports == nil {
		doc.Reports = []model.WorkReport{}
	}

	for i := range doc.Reports {
		if doc.Reports[i].ImageNames == nil {
			doc.Reports[i].ImageNames = []string{}
		}
	}

	return doc
}
