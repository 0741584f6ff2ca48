package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateUsername validates the display/login name
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if utf8.RuneCountInString(trimmed) > 50 {
		return errors.New("username is too long (max 50 characters)")
	}

	return nil
}
