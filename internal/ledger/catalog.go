package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/inovacc/fieldlog/internal/model"
)

// AddProject appends a project entry, conventionally "12345 - Label".
func AddProject(name string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := addEntry(d.Projects, "project", name)
		if err != nil {
			return d, err
		}

		d.Projects = list

		return d, nil
	}
}

// RenameProject changes a project entry. Reports keep their project code.
func RenameProject(oldName, newName string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := renameEntry(d.Projects, "project", oldName, newName)
		if err != nil {
			return d, err
		}

		d.Projects = list

		return d, nil
	}
}

// RemoveProject removes a project entry.
func RemoveProject(name string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := removeEntry(d.Projects, "project", name)
		if err != nil {
			return d, err
		}

		d.Projects = list

		return d, nil
	}
}

// ImportProjects appends one project per non-empty line of text. Commas and
// semicolons become " - " so spreadsheet exports ("12345;Label") fit the
// list format. Lines already in the list, or repeated, are skipped.
func ImportProjects(text string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		for _, p := range ParseProjects(text) {
			if !slices.Contains(d.Projects, p) {
				d.Projects = append(d.Projects, p)
			}
		}

		return d, nil
	}
}

// ParseProjects returns the project entries of an import file.
func ParseProjects(text string) []string {
	replacer := strings.NewReplacer(",", " - ", ";", " - ")

	var out []string

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out = append(out, replacer.Replace(line))
	}

	return out
}

// AddVehicle appends a vehicle.
func AddVehicle(name string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := addEntry(d.Vehicles, "vehicle", name)
		if err != nil {
			return d, err
		}

		d.Vehicles = list

		return d, nil
	}
}

// RenameVehicle renames a vehicle and every report that used it.
func RenameVehicle(oldName, newName string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := renameEntry(d.Vehicles, "vehicle", oldName, newName)
		if err != nil {
			return d, err
		}

		d.Vehicles = list
		newName = strings.TrimSpace(newName)

		for i := range d.Reports {
			if d.Reports[i].Vehicle == oldName {
				d.Reports[i].Vehicle = newName
			}
		}

		return d, nil
	}
}

// RemoveVehicle removes a vehicle. Reports keep the name they recorded.
func RemoveVehicle(name string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		list, err := removeEntry(d.Vehicles, "vehicle", name)
		if err != nil {
			return d, err
		}

		d.Vehicles = list

		return d, nil
	}
}

func addEntry(list []string, kind, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if slices.Contains(list, name) {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrDuplicate)
	}

	return append(list, name), nil
}

func renameEntry(list []string, kind, oldName, newName string) ([]string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrEmptyName
	}

	i := slices.Index(list, oldName)
	if i < 0 {
		return nil, fmt.Errorf("%s %q: %w", kind, oldName, ErrNotFound)
	}

	if newName != oldName && slices.Contains(list, newName) {
		return nil, fmt.Errorf("%s %q: %w", kind, newName, ErrDuplicate)
	}

	list[i] = newName

	return list, nil
}

func removeEntry(list []string, kind, name string) ([]string, error) {
	i := slices.Index(list, name)
	if i < 0 {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}

	return slices.Delete(list, i, i+1), nil
}
