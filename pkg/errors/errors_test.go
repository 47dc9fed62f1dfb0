package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidMetric, "metric %q out of range", "seat_util")

	if err.Code != ErrCodeInvalidMetric {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidMetric)
	}

	if err.Message != `metric "seat_util" out of range` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_METRIC: metric "seat_util" out of range`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeAssetUnavailable, cause, "read logo")

	if err.Code != ErrCodeAssetUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeAssetUnavailable)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
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
			err:      New(ErrCodeInvalidPanel, "test"),
			code:     ErrCodeInvalidPanel,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidPanel, "test"),
			code:     ErrCodeLayoutConflict,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("layout: %w", New(ErrCodeLayoutConflict, "overlap")),
			code:     ErrCodeLayoutConflict,
			expected: true,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeInvalidDescriptor, New(ErrCodeInvalidMetric, "inner"), "outer"),
			code:     ErrCodeInvalidDescriptor,
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
		{"Error type", New(ErrCodeAssetUnavailable, "test"), ErrCodeAssetUnavailable},
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
		{"with cause", Wrap(ErrCodeAssetUnavailable, errors.New("denied"), "read logo"), "read logo: denied"},
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
