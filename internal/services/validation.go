package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vytor/flashycardy/internal/errors"
)

// Field limits shared by forms and the JSON API.
const (
	MaxDeckNameLength        = 100
	MaxDeckDescriptionLength = 500
	MaxCardSideLength        = 1000
	MaxUserNameLength        = 100
	MinPasswordLength        = 8
	MaxPasswordLength        = 72 // bcrypt ignores anything longer
)

// requiredText trims s and checks it holds between 1 and max characters.
func requiredText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.NewValidationError(field, "is required")
	}
	if utf8.RuneCountInString(s) > max {
		return "", errors.NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return s, nil
}

// optionalText trims s and checks it holds at most max characters.
func optionalText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		return "", errors.NewValidationError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return s, nil
}
