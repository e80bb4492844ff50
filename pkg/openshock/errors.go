package openshock

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeInvalidArgument indicates an empty or invalid value passed to a setter or option.
	// Raised locally before any network call.
	ErrTypeInvalidArgument ErrorType = iota
	// ErrTypePreconditionFailed indicates a request was attempted before a User-Agent was set
	ErrTypePreconditionFailed
	// ErrTypeAPI indicates the API answered with a status outside [200, 300)
	ErrTypeAPI
	// ErrTypeParse indicates a successful response whose body was not valid JSON
	ErrTypeParse
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidArgument:
		return "Invalid Argument"
	case ErrTypePreconditionFailed:
		return "Precondition Failed"
	case ErrTypeAPI:
		return "API Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every client operation for failures the client itself
// detects. Transport failures (DNS, connection refused, timeouts, context
// cancellation) are returned as-is from the underlying http.Client.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (ErrTypeAPI only)
	Payload    any       // Decoded error body, or {"message": raw text} (ErrTypeAPI only)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Type == ErrTypeAPI:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Type, e.StatusCode, e.Payload)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidArgumentError creates an error for a rejected configuration value
func NewInvalidArgumentError(message string) *Error {
	return &Error{Type: ErrTypeInvalidArgument, Message: message}
}

// NewPreconditionError creates an error for a request made without a User-Agent
func NewPreconditionError(message string) *Error {
	return &Error{Type: ErrTypePreconditionFailed, Message: message}
}

// NewAPIError creates an error for a non-2xx response
func NewAPIError(statusCode int, payload any) *Error {
	return &Error{
		Type:       ErrTypeAPI,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		StatusCode: statusCode,
		Payload:    payload,
	}
}

// NewParseError creates an error for an undecodable success body
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

func errorType(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

// IsInvalidArgument reports whether err was caused by an invalid configuration value
func IsInvalidArgument(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeInvalidArgument
}

// IsPreconditionFailed reports whether err was caused by a missing User-Agent
func IsPreconditionFailed(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypePreconditionFailed
}

// IsAPIError reports whether err is a non-2xx API response
func IsAPIError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeAPI
}

// IsParseError reports whether err is an undecodable success body
func IsParseError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeParse
}

// StatusCode returns the HTTP status carried by an API error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Type == ErrTypeAPI {
		return e.StatusCode
	}
	return 0
}
