package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a region or coordinate-space name.
// Names become path segments in resolved region identifiers
// (e.g. "page/body/headshot"), so path separators and control
// characters are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators ("/", "\\") or relative segments ("..")
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "name too long (max 128 characters)")
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidConfig, "name cannot have leading or trailing whitespace: %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"/", "\\", ".."} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidConfig, "name contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateDigits validates the fractional-digit count used when
// formatting dumped coordinates. The range is bounded to keep dump
// output stable and diffable.
func ValidateDigits(digits int) error {
	if digits < 0 || digits > 12 {
		return New(ErrCodeInvalidConfig, "digits must be between 0 and 12, got %d", digits)
	}
	return nil
}
