package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies an application failure. The set is closed: every AppError
// carries exactly one of these, and the HTTP layer switches on it to pick a
// status code.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindBusiness     Kind = "BUSINESS"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindInternal     Kind = "INTERNAL"
)

// AppError is the application-wide failure value.
type AppError struct {
	Kind       Kind
	Message    string
	Cause      error
	StackTrace string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

func newError(kind Kind, message string) *AppError {
	return &AppError{
		Kind:       kind,
		Message:    message,
		StackTrace: captureStackTrace(),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return newError(KindValidation, message)
}

// NewBusinessError creates a business-rule violation error
func NewBusinessError(message string) *AppError {
	return newError(KindBusiness, message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(KindUnauthorized, message)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return newError(KindForbidden, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return newError(KindNotFound, fmt.Sprintf("%s not found", resource))
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return newError(KindInternal, message)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind checks if an error carries a specific kind
func IsKind(err error, kind Kind) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Kind == kind
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return IsKind(err, KindUnauthorized)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
