package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure. Codes are stable and safe to
// compare in tests and scripts.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigMissing  ErrorCode = "CONFIG_MISSING"
	ErrConfigCorrupt  ErrorCode = "CONFIG_CORRUPT"
	ErrWriteFailed    ErrorCode = "WRITE_FAILED"
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"

	// Profile errors
	ErrDuplicateProfile ErrorCode = "DUPLICATE_PROFILE"
	ErrUnknownProfile   ErrorCode = "UNKNOWN_PROFILE"
	ErrNoActiveProfile  ErrorCode = "NO_ACTIVE_PROFILE"

	// Tracked path errors
	ErrPathNotFound   ErrorCode = "PATH_NOT_FOUND"
	ErrPathNotTracked ErrorCode = "PATH_NOT_TRACKED"
	ErrDuplicatePath  ErrorCode = "DUPLICATE_PATH"
	ErrNothingTracked ErrorCode = "NOTHING_TRACKED"

	// Backup references
	ErrAmbiguousReference ErrorCode = "AMBIGUOUS_REFERENCE"
	ErrUnknownReference   ErrorCode = "UNKNOWN_REFERENCE"

	// Git and transport
	ErrGit            ErrorCode = "GIT"
	ErrNetworkFailure ErrorCode = "NETWORK_FAILURE"
	ErrNetworkTimeout ErrorCode = "NETWORK_TIMEOUT"

	// Copy and batch results
	ErrPartialCopyFailure ErrorCode = "PARTIAL_COPY_FAILURE"
	ErrAllItemsFailed     ErrorCode = "ALL_ITEMS_FAILED"
)

// FuxiError is a structured error carrying a code, a short message and
// optional details for callers that want more than the message.
type FuxiError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FuxiError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FuxiError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a FuxiError with the same code.
func (e *FuxiError) Is(target error) bool {
	var targetErr *FuxiError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FuxiError with the given code and message
func New(code ErrorCode, message string) *FuxiError {
	return &FuxiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FuxiError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FuxiError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *FuxiError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FuxiError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *FuxiError) WithDetail(key string, value interface{}) *FuxiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *FuxiError) WithDetails(details map[string]interface{}) *FuxiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fuxiErr *FuxiError
	if errors.As(err, &fuxiErr) {
		return fuxiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FuxiError
func GetErrorCode(err error) ErrorCode {
	var fuxiErr *FuxiError
	if errors.As(err, &fuxiErr) {
		return fuxiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FuxiError
func GetErrorDetails(err error) map[string]interface{} {
	var fuxiErr *FuxiError
	if errors.As(err, &fuxiErr) {
		return fuxiErr.Details
	}
	return nil
}

// Message returns the human facing message of err without the code prefix.
// Wrapped causes are appended so git stderr reaches the user.
func Message(err error) string {
	var fuxiErr *FuxiError
	if errors.As(err, &fuxiErr) {
		if fuxiErr.Wrapped != nil {
			return fmt.Sprintf("%s: %s", fuxiErr.Message, Message(fuxiErr.Wrapped))
		}
		return fuxiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
