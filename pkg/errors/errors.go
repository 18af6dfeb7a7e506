package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
	ErrModDir     ErrorCode = "MOD_DIR"

	// Manifest errors
	ErrManifestRead    ErrorCode = "MANIFEST_READ"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Rule errors, always scoped to a single rule
	ErrUnresolvedVar     ErrorCode = "UNRESOLVED_VAR"
	ErrUnresolvedCapture ErrorCode = "UNRESOLVED_CAPTURE"
	ErrInvalidPattern    ErrorCode = "INVALID_PATTERN"
	ErrCopySource        ErrorCode = "COPY_SOURCE"
	ErrModuleSource      ErrorCode = "MODULE_SOURCE"
	ErrModuleRegister    ErrorCode = "MODULE_REGISTER"

	// Side channel errors
	ErrSinkWrite ErrorCode = "SINK_WRITE"
)

// LovelyError represents a structured error with code and details
type LovelyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LovelyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LovelyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LovelyError) Is(target error) bool {
	var targetErr *LovelyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LovelyError with the given code and message
func New(code ErrorCode, message string) *LovelyError {
	return &LovelyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LovelyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LovelyError {
	return &LovelyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LovelyError
func Wrap(err error, code ErrorCode, message string) *LovelyError {
	if err == nil {
		return nil
	}
	return &LovelyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LovelyError {
	if err == nil {
		return nil
	}
	return &LovelyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LovelyError) WithDetail(key string, value interface{}) *LovelyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lovelyErr *LovelyError
	if errors.As(err, &lovelyErr) {
		return lovelyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LovelyError
func GetErrorCode(err error) ErrorCode {
	var lovelyErr *LovelyError
	if errors.As(err, &lovelyErr) {
		return lovelyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LovelyError
func GetErrorDetails(err error) map[string]interface{} {
	var lovelyErr *LovelyError
	if errors.As(err, &lovelyErr) {
		return lovelyErr.Details
	}
	return nil
}
