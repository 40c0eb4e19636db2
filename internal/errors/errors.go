package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FileMissing indicates an input file does not exist or is unreadable
	FileMissing ErrorCode = "FILE_MISSING"
	// ParseFailed indicates an input is not valid JSON/YAML
	ParseFailed ErrorCode = "PARSE_FAILED"
	// WriteFailed indicates the output destination could not be written
	WriteFailed ErrorCode = "WRITE_FAILED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Exit codes per error code. Parse failures and missing files get distinct
// codes so callers can script around them; everything else is 1.
var exitCodes = map[ErrorCode]int{
	FileMissing:   2,
	ParseFailed:   3,
	WriteFailed:   1,
	InternalError: 1,
}

// WfsortError carries a stable code alongside the message and cause.
type WfsortError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// New creates a WfsortError.
func New(code ErrorCode, message string, cause error) *WfsortError {
	return &WfsortError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *WfsortError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *WfsortError) Unwrap() error {
	return e.cause
}

// ExitCode maps an error to the process exit code. nil maps to 0; errors
// without a WfsortError in their chain map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var werr *WfsortError
	if errors.As(err, &werr) {
		if code, ok := exitCodes[werr.Code]; ok {
			return code
		}
	}
	return 1
}
