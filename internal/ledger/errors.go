package ledger

import "errors"

var (
	ErrInvalidProject     = errors.New("project number must have exactly 5 digits")
	ErrVehicleRequired    = errors.New("vehicle is required")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
