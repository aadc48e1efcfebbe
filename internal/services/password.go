package services

import (
	"strings"

	"github.com/GregMSThompson/task-tracker/internal/errs"
)

const (
	minPasswordLength = 8
	passwordSymbols   = "@$!%*?&"

	PasswordPolicyMessage = "Password must be at least 8 characters, include uppercase, lowercase, number, and special character."
)

// ValidatePassword enforces the registration policy: at least eight
// characters drawn only from letters, digits and @$!%*?&, with at least one
// of each of lowercase, uppercase, digit and symbol.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errs.NewValidationError(PasswordPolicyMessage)
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return errs.NewValidationError(PasswordPolicyMessage)
		}
	}

	if !lower || !upper || !digit || !symbol {
		return errs.NewValidationError(PasswordPolicyMessage)
	}
	return nil
}
