// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MaxPasswordLength caps password length to prevent unreasonable inputs.
	MaxPasswordLength = 128
	// MaxNameLength is the maximum display name length.
	MaxNameLength = 50
	// MaxEmailLength is the maximum email address length.
	MaxEmailLength = 255
	// MaxStatusLength is the maximum status content length.
	MaxStatusLength = 140
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks if a display name meets requirements.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLength)
	}
	return nil
}

// ValidateEmail checks basic email format and length.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLength)
	}
	return nil
}

// ValidatePassword checks password length and that the confirmation matches.
func ValidatePassword(password, confirmation string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}
	if password != confirmation {
		return fmt.Errorf("password confirmation does not match")
	}
	return nil
}

// ValidateStatusContent checks status content length.
func ValidateStatusContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len([]rune(content)) > MaxStatusLength {
		return fmt.Errorf("content must not exceed %d characters", MaxStatusLength)
	}
	return nil
}
