package errors

import (
	"strings"
	"unicode"
)

// ValidateItemCode validates a product item code for safety and correctness.
// Item codes originate in loosely structured spreadsheets, so the rules are
// intentionally conservative:
//   - No empty codes
//   - No control characters
//   - Maximum length of 64 characters
//
// Duplicate suffixes ("-2", "-3") produced by quantity expansion are valid.
func ValidateItemCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidItemCode, "item code cannot be empty")
	}

	if len(code) > 64 {
		return New(ErrCodeInvalidItemCode, "item code too long (max 64 characters)")
	}

	for _, r := range code {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItemCode, "item code contains control characters")
		}
	}

	return nil
}

// ValidateModuleName validates a module display name.
// Names appear in rendered output and file names derived from them, so
// control characters and path separators are rejected.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "module name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "module name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "module name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "module name cannot contain path separators")
	}

	return nil
}

// ValidatePath validates a user-supplied file path for safety.
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
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
