package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeShapeMismatch, "round %d has %d matches", 1, 3)

	if err.Code != ErrCodeShapeMismatch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeShapeMismatch)
	}

	if err.Message != "round 1 has 3 matches" {
		t.Errorf("Message = %v, want %v", err.Message, "round 1 has 3 matches")
	}

	expected := "SHAPE_MISMATCH: round 1 has 3 matches"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidInput, cause, "decode bracket")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_INPUT: decode bracket: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeInvalidIndex, "test"),
			code:     ErrCodeInvalidIndex,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidIndex, "test"),
			code:     ErrCodeShapeMismatch,
			expected: false,
		},
		{
			name:     "outer code",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeShapeMismatch, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeInvalidFormat, fmt.Errorf("decode: %w", New(ErrCodeShapeMismatch, "inner")), "outer"),
			code:     ErrCodeShapeMismatch,
			expected: true,
		},
		{
			name:     "code absent from chain",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeShapeMismatch, "inner"), "outer"),
			code:     ErrCodeInvalidIndex,
			expected: false,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("layout: %w", New(ErrCodeShapeMismatch, "inner")),
			code:     ErrCodeShapeMismatch,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidStyle, "test"), ErrCodeInvalidStyle},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsGeometry(t *testing.T) {
	if !IsGeometry(New(ErrCodeShapeMismatch, "x")) {
		t.Error("shape mismatch should be a geometry error")
	}
	if !IsGeometry(fmt.Errorf("wrap: %w", New(ErrCodeInvalidIndex, "x"))) {
		t.Error("wrapped invalid index should be a geometry error")
	}
	if IsGeometry(New(ErrCodeInvalidInput, "x")) {
		t.Error("invalid input is not a geometry error")
	}
	if IsGeometry(nil) {
		t.Error("nil is not a geometry error")
	}
}
