package errors

import (
	"strings"
	"unicode"
)

// maxTitleLength bounds section and document titles. Titles end up in SVG
// text and in derived output file names.
const maxTitleLength = 200

// ValidateTitle validates a document or section title.
//
// The validation rules are:
//   - No empty titles
//   - No control characters
//   - Maximum length of 200 characters
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}

	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters")
		}
	}

	return nil
}

// ValidateMatchID validates a match identifier.
// IDs are used as SVG element ids and DOT node names, so they must be
// non-empty and free of whitespace and quotes.
func ValidateMatchID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "match id cannot be empty")
	}

	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '"' || r == '\'' {
			return New(ErrCodeInvalidInput, "match id %q contains invalid characters", id)
		}
	}

	return nil
}

// ValidatePath validates an output file path for safety.
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
