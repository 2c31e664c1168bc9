// Package identity canonicalizes employee identifiers. Every read and write
// path goes through Normalize so stored keys and incoming ids agree.
package identity

import (
	"strings"

	"attendance-tracker/internal/models"
)

// Normalize trims whitespace and lower-cases raw. An id that is empty after
// trimming is a validation error.
func Normalize(raw string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	if id == "" {
		return "", models.NewValidationError("employeeId", "is required")
	}
	return id, nil
}

// Equal reports whether a and b denote the same employee.
func Equal(a, b string) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	return errA == nil && errB == nil && na == nb
}
