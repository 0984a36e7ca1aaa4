package util

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	// MaxEmailLength caps stored email addresses (RFC 5321 limit).
	MaxEmailLength = 254
	// MaxNameLength caps display names.
	MaxNameLength = 100
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// ValidateEmail checks that email is present, within limits, and
// plausibly formed. Callers should normalize first.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email exceeds maximum length of %d", MaxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateName trims and bounds a display name. Returns the trimmed value.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("name exceeds maximum length of %d", MaxNameLength)
	}
	return name, nil
}
