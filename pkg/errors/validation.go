package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
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

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateRange checks that lo <= hi, both finite and at least floor.
func ValidateRange(name string, lo, hi, floor float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return New(ErrCodeInvalidConfig, "%s range must be finite", name)
	}
	if lo < floor {
		return New(ErrCodeInvalidConfig, "%s minimum must be at least %g, got %g", name, floor, lo)
	}
	if hi < lo {
		return New(ErrCodeInvalidConfig, "%s range is inverted: [%g, %g]", name, lo, hi)
	}
	return nil
}

// ValidatePositive checks that an integer setting is greater than zero.
func ValidatePositive(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", name, v)
	}
	return nil
}
