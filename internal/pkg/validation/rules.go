package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Email validation pattern, applied to lower-cased input
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation. The value is trimmed.
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation. Lengths count runes.
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsValidEmail reports whether email matches EmailPattern
func IsValidEmail(email string) bool {
	return NewStringValidation(email).WithPattern(CompiledPatterns.Email).Validate()
}

// IsValidName reports whether name is non-blank and within the allowed length
func IsValidName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}

// PasswordStrength describes which password requirements are met
type PasswordStrength struct {
	LongEnough bool
	HasLetter  bool
	HasDigit   bool
}

// OK reports whether every requirement is met
func (p PasswordStrength) OK() bool {
	return p.LongEnough && p.HasLetter && p.HasDigit
}

// CheckPassword evaluates password against the password rules
func CheckPassword(password string) PasswordStrength {
	strength := PasswordStrength{
		LongEnough: utf8.RuneCountInString(password) >= PasswordMinLength,
	}
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			strength.HasLetter = true
		case unicode.IsDigit(char):
			strength.HasDigit = true
		}
	}
	return strength
}
