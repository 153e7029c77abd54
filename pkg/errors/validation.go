package errors

import (
	"strings"
	"unicode"
)

// ValidateDatasetID validates a dataset identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal or injection
// when interpolated into API URLs or export file names.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Catalog-specific identifier conventions should be checked separately by
// the caller.
func ValidateDatasetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "dataset identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidDataset, "dataset identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset identifier contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidDataset, "dataset identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateQuery validates a free-text search query.
// Empty queries are rejected so callers never issue unconstrained catalog
// scans by accident.
func ValidateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return New(ErrCodeInvalidQuery, "search query cannot be empty")
	}

	const maxQueryLength = 500
	if len(q) > maxQueryLength {
		return New(ErrCodeInvalidQuery, "search query too long (max %d characters)", maxQueryLength)
	}

	for _, r := range q {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidQuery, "search query contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateExportName validates a file name derived from a distribution's
// display name before it is used as an export target. It ensures the name is
// a simple basename without path components.
func ValidateExportName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "export file name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "export file name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "export file name cannot be a hidden file")
	}

	const maxNameLength = 255
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "export file name too long (max %d characters)", maxNameLength)
	}

	return nil
}
