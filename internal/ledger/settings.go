package ledger

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/inovacc/fieldlog/internal/model"
)

// UpdateSettings sets the admin password and the connection configuration.
// An empty admin password restores model.DefaultAdminPassword; an empty
// configuration switches the device to local-only mode.
func UpdateSettings(adminPassword, connectionConfig string) model.Mutation {
	return func(d model.Document) (model.Document, error) {
		if adminPassword == "" {
			adminPassword = model.DefaultAdminPassword
		}

		d.AdminPassword = adminPassword
		d.ConnectionConfig = strings.TrimSpace(connectionConfig)

		return d, nil
	}
}

// AuthenticateAdmin checks the shared admin password.
func AuthenticateAdmin(d model.Document, password string) error {
	want := d.AdminPassword
	if want == "" {
		want = model.DefaultAdminPassword
	}

	if !secretEqual(want, password) {
		return fmt.Errorf("admin: %w", ErrInvalidCredentials)
	}

	return nil
}

// AuthenticateTechnician checks a technician's password and returns the
// technician.
func AuthenticateTechnician(d model.Document, name, password string) (model.TechUser, error) {
	tech, ok := d.Technician(name)
	if !ok || !secretEqual(tech.Password, password) {
		return model.TechUser{}, fmt.Errorf("technician %q: %w", name, ErrInvalidCredentials)
	}

	return tech, nil
}

func secretEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
