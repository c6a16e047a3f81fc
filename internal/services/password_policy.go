package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

const minPasswordLength = 8

type passwordRule struct {
	reason string
	match  func(rune) bool
}

var passwordCharacterRules = []passwordRule{
	{reason: "an uppercase letter", match: unicode.IsUpper},
	{reason: "a lowercase letter", match: unicode.IsLower},
	{reason: "a digit", match: unicode.IsDigit},
}

// ValidatePasswordStrength checks passwords chosen for seeded or operator-created accounts.
// The returned error wraps ErrWeakPassword and names the first unmet rule.
func ValidatePasswordStrength(password string) error {
	if strings.TrimSpace(password) != password {
		return fmt.Errorf("%w: leading or trailing spaces", ErrWeakPassword)
	}
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf("%w: needs at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	for _, rule := range passwordCharacterRules {
		if strings.IndexFunc(password, rule.match) < 0 {
			return fmt.Errorf("%w: needs %s", ErrWeakPassword, rule.reason)
		}
	}
	return nil
}
