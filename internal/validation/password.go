package validation

import (
	"errors"
)

// ValidatePassword checks the bounds bcrypt can handle.
// No strength policy: any non-empty password is accepted.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	// bcrypt rejects input longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	return nil
}
