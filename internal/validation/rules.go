// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/courtside/registration/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// phoneRegex accepts digits, spaces, dashes and an optional leading plus
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

	// currencyRegex matches three-letter ISO 4217 codes in lowercase
	currencyRegex = regexp.MustCompile(`^[a-z]{3}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Email validates that a string is a well-formed email address.
// Addresses are compared case-insensitively throughout the application,
// so validation normalizes before matching.
var Email = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_email", "email must be a string")
	}
	if !emailRegex.MatchString(strings.TrimSpace(s)) {
		return validation.NewError("validation_email", "must be a valid email address")
	}
	return nil
})

// Phone validates an optional phone number field. Empty strings pass; callers
// mark the field Required separately when a phone number is mandatory.
var Phone = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_phone", "phone must be a string")
	}
	if s == "" {
		return nil
	}
	if !phoneRegex.MatchString(s) {
		return validation.NewError("validation_phone", "must be a valid phone number")
	}
	return nil
})

// CurrencyCode validates a lowercase three-letter ISO 4217 currency code.
var CurrencyCode = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_currency", "currency must be a string")
	}
	if !currencyRegex.MatchString(s) {
		return validation.NewError("validation_currency", "must be a lowercase ISO 4217 code")
	}
	return nil
})

// NormalizeEmail lowercases and trims an email address. The registration
// uniqueness contract is keyed on (event_id, email), so every write and lookup
// must normalize the same way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
