package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/inovacc/fieldlog/internal/model"
)

// AddTechnician appends a technician. An empty password becomes
// model.DefaultTechnicianPassword.
func AddTechnician(name, password string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return d, ErrEmptyName
		}

		if _, ok := d.Technician(name); ok {
			return d, fmt.Errorf("technician %q: %w", name, ErrDuplicate)
		}

		if password == "" {
			password = model.DefaultTechnicianPassword
		}

		d.Technicians = append(d.Technicians, model.TechUser{
			ID:       uuid.NewString(),
			Name:     name,
			Password: password,
		})

		return d, nil
	}
}

// RenameTechnician renames a technician and every report filed under the old
// name. An empty password keeps the current one.
func RenameTechnician(oldName, newName, password string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		newName = strings.TrimSpace(newName)
		if newName == "" {
			return d, ErrEmptyName
		}

		i := technicianIndex(d.Technicians, oldName)
		if i < 0 {
			return d, fmt.Errorf("technician %q: %w", oldName, ErrNotFound)
		}

		if newName != oldName && technicianIndex(d.Technicians, newName) >= 0 {
			return d, fmt.Errorf("technician %q: %w", newName, ErrDuplicate)
		}

		d.Technicians[i].Name = newName
		if password != "" {
			d.Technicians[i].Password = password
		}

		for j := range d.Reports {
			if d.Reports[j].Technician == oldName {
				d.Reports[j].Technician = newName
			}
		}

		return d, nil
	}
}

// RemoveTechnician removes a technician. Their reports are kept.
func RemoveTechnician(name string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		i := technicianIndex(d.Technicians, name)
		if i < 0 {
			return d, fmt.Errorf("technician %q: %w", name, ErrNotFound)
		}

		d.Technicians = append(d.Technicians[:i], d.Technicians[i+1:]...)

		return d, nil
	}
}

func technicianIndex(techs []model.TechUser, name string) int {
	for i, t := range techs {
		if t.Name == name {
			return i
		}
	}

	return -1
}
