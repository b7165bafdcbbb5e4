package errors

import (
	"strings"
	"unicode"
)

// ValidateLabel validates a node label read from user input.
//
// Labels end up inside SVG text and DOT identifiers, so the rules reject
// what would break those formats:
//   - No empty labels
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidMatrix, "node label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidMatrix, "node label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMatrix, "node label %q contains control characters", label)
		}
	}

	return nil
}

// ValidatePath validates an output path given on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateCacheURL validates the address of a shared cache backend.
// Only redis:// and rediss:// URLs are accepted.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "cache URL must use redis or rediss scheme")
	}

	return nil
}
