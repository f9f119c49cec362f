// Package errors defines the application error taxonomy. Every failure a
// client can observe maps to one of the predefined values below; anything
// else is treated as an internal fault and hidden behind a generic 500.
package errors

import (
	"net/http"

	"gatekeeper/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error values, one per observable failure mode.
var (
	// ErrValidationFailed covers missing or malformed input. Validation
	// rejects these before they reach the account service.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"incorrect input fields",
	)

	// ErrEmailTaken is the conflict surfaced when a registration or an email
	// edit collides with an existing account.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"User already exists!",
	)

	// ErrUserNotFound is returned at login or edit for an unknown account.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User doesn't exist!",
	)

	// ErrWrongPassword is the password-mismatch rejection at login.
	ErrWrongPassword = NewBaseError(
		http.StatusNotAcceptable,
		"WRONG_PASSWORD",
		"Wrong password!",
	)

	// ErrUnauthenticated means no credential token was presented at all.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Not authorized!",
	)

	// ErrInvalidCredential covers a malformed, tampered or expired token, and
	// a valid token whose account no longer resolves. The two cases are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredential = NewBaseError(
		http.StatusForbidden,
		"INVALID_CREDENTIAL",
		"A token is required for authentication",
	)

	// ErrInternal is the catch-all for unexpected faults. No internal detail
	// travels with it.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Some internal error occured",
	)
)
