package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cause := errors.New("underlying error")

	err := New(ParseFailed, "failed to parse document", cause)

	if err.Code != ParseFailed {
		t.Errorf("Code = %v, want %v", err.Code, ParseFailed)
	}
	if err.Message != "failed to parse document" {
		t.Errorf("Message = %q, want %q", err.Message, "failed to parse document")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain should reach the cause")
	}
}

func TestWfsortError_Error(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		err := New(FileMissing, "cannot read flows.json", errors.New("no such file"))
		msg := err.Error()
		if !strings.Contains(msg, "FILE_MISSING") {
			t.Errorf("Error() = %q, should contain the code", msg)
		}
		if !strings.Contains(msg, "no such file") {
			t.Errorf("Error() = %q, should contain the cause", msg)
		}
	})

	t.Run("without cause", func(t *testing.T) {
		err := New(InternalError, "something broke", nil)
		if got, want := err.Error(), "[INTERNAL_ERROR] something broke"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is success", nil, 0},
		{"missing file", New(FileMissing, "m", nil), 2},
		{"parse failure", New(ParseFailed, "m", nil), 3},
		{"write failure", New(WriteFailed, "m", nil), 1},
		{"internal", New(InternalError, "m", nil), 1},
		{"plain error", errors.New("boom"), 1},
		{"wrapped", fmt.Errorf("outer: %w", New(ParseFailed, "m", nil)), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
