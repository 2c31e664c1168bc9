package identity

import (
	"errors"
	"testing"

	"attendance-tracker/internal/models"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"abc123", "abc123"},
		{"ABC123", "abc123"},
		{"  AbC123\t", "abc123"},
		{"emp.42", "emp.42"},
	}

	for _, tc := range testCases {
		got, err := Normalize(tc.input)
		if err != nil {
			t.Fatalf("Normalize(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once, err := Normalize(" MiXeD-Id ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("normalize again: %v", err)
	}
	if once != twice {
		t.Fatalf("expected %q, got %q", once, twice)
	}
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := Normalize(in)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("Normalize(%q) error = %v, want ErrValidation", in, err)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("ABC123", " abc123") {
		t.Errorf("expected ids differing only by case to be equal")
	}
	if Equal("abc123", "abc124") {
		t.Errorf("expected different ids to differ")
	}
	if Equal("", "") {
		t.Errorf("expected empty ids to never be equal")
	}
}
