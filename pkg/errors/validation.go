package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxConceptIDLength bounds identifiers accepted from untrusted callers such
// as query parameters of the preview server.
const maxConceptIDLength = 2048

// ValidateConceptID validates a concept identifier supplied from outside the
// taxonomy document (flags, HTTP requests).
//
// The rules are conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 2048 bytes
func ValidateConceptID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "concept id cannot be empty")
	}

	if len(id) > maxConceptIDLength {
		return New(ErrCodeInvalidInput, "concept id too long (max %d characters)", maxConceptIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "concept id contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputDir validates the directory artifacts are written into.
// The directory itself may not exist yet; it is created on first write.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidInput, "output directory cannot be empty")
	}

	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidInput, "output directory contains a null byte")
	}

	if filepath.Clean(dir) != filepath.Clean(strings.TrimSpace(dir)) {
		return New(ErrCodeInvalidInput, "output directory has leading or trailing whitespace: %q", dir)
	}

	return nil
}
