package validation

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254 // RFC 5321 path limit

// NormalizeEmail gives the form stored on the user and used for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare, normalized RFC 5322 address. Display names
// ("Alice <a@x.com>") are rejected: the address is the account key and is
// also where the verification code is sent.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}
	if len(email) > maxEmailLength {
		return errors.New("email address is too long (max 254 characters)")
	}
	if email != NormalizeEmail(email) {
		return errors.New("email address must be lower case without surrounding spaces")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return errors.New("invalid email address format")
	}
	return nil
}
