package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSchemeNotFound, "no scheme in %s", "tax.json")

	if err.Code != ErrCodeSchemeNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSchemeNotFound)
	}

	if err.Message != "no scheme in tax.json" {
		t.Errorf("Message = %v, want %v", err.Message, "no scheme in tax.json")
	}

	expected := "SCHEME_NOT_FOUND: no scheme in tax.json"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeWriteFailed, cause, "write animals_taxonomy.html")

	if err.Code != ErrCodeWriteFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeWriteFailed)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeSchema, "test"),
			code:     ErrCodeSchema,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeSchema, "test"),
			code:     ErrCodeWriteFailed,
			expected: false,
		},
		{
			name:     "inner code through Wrap",
			err:      Wrap(ErrCodeInternal, New(ErrCodeSchema, "inner"), "outer"),
			code:     ErrCodeSchema,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("load: %w", New(ErrCodeSchemeNotFound, "x")),
			code:     ErrCodeSchemeNotFound,
			expected: true,
		},
		{
			name:     "joined errors",
			err:      errors.Join(New(ErrCodeRenderFailed, "a"), New(ErrCodeWriteFailed, "b")),
			code:     ErrCodeWriteFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "x")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeWriteFailed, errors.New("permission denied"), "write out.html")
	if got := UserMessage(err); got != "write out.html: permission denied" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
