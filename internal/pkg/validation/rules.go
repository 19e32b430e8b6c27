package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Hex color, e.g. #3498db
	HexColorPattern = `^#[0-9a-fA-F]{6}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	HexColor *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	HexColor: regexp.MustCompile(HexColorPattern),
}

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidHexColor reports whether s is a #rrggbb color.
func IsValidHexColor(s string) bool {
	return CompiledPatterns.HexColor.MatchString(s)
}

// IsValidPassword reports whether the password satisfies the minimum length.
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}
