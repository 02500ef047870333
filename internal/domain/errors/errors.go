// Package errors defines the application error kinds and their HTTP mapping.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
// The copy still matches the original through errors.Is.
func (e *BaseError) WithDetails(details string) error {
	return &detailedError{BaseError: &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}, origin: e}
}

type detailedError struct {
	*BaseError
	origin *BaseError
}

func (e *detailedError) Is(target error) bool {
	return target == e.origin
}

// Authentication failures. Their messages are deliberately coarse: callers only ever
// learn "no credentials", "invalid credentials" or "not authorized".
var (
	ErrNoCredentials = NewBaseError(
		http.StatusUnauthorized,
		"NO_CREDENTIALS",
		"no credentials",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	// ErrInvalidToken is the InvalidTokenError kind: malformed, forged and expired
	// tokens all collapse into it.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHORIZED",
		"not authorized",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusUnauthorized,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrRoleNotAuthorized = NewBaseError(
		http.StatusForbidden,
		"ROLE_NOT_AUTHORIZED",
		"not authorized for this role",
		"",
	)

	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"invalid or expired login attempt",
		"",
	)

	ErrOAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"invalid credentials",
		"",
	)
)

// Policy, conflict and lookup errors.
var (
	// ErrPolicy is the PolicyError kind: credential input that cannot be processed.
	ErrPolicy = NewBaseError(
		http.StatusBadRequest,
		"POLICY_VIOLATION",
		"credential input rejected",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"password does not meet the strength requirements",
		"",
	)

	// ErrConflict is the ConflictError kind: a uniqueness race that survived one retry.
	ErrConflict = NewBaseError(
		http.StatusInternalServerError,
		"IDENTITY_CONFLICT",
		"identity could not be resolved",
		"",
	)

	ErrRegistrationRejected = NewBaseError(
		http.StatusConflict,
		"REGISTRATION_REJECTED",
		"registration could not be completed",
		"",
	)

	ErrIdentityNotFound = NewBaseError(
		http.StatusNotFound,
		"IDENTITY_NOT_FOUND",
		"identity not found",
		"",
	)

	ErrIdentityExists = NewBaseError(
		http.StatusConflict,
		"IDENTITY_EXISTS",
		"an identity with the same email or employee code already exists",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)
)

// StoreError is the StoreError kind raised by identity store adapters.
// Uniqueness failures are flagged so the resolver can retry them specifically.
type StoreError struct {
	err     error
	details string
	unique  bool
}

// NewStoreError wraps a transport or engine failure.
func NewStoreError(err error, details string) *StoreError {
	return &StoreError{err: err, details: details}
}

// NewUniqueViolationError wraps a failure caused by a unique index.
func NewUniqueViolationError(err error, details string) *StoreError {
	return &StoreError{err: err, details: details, unique: true}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.err == nil {
		return "store operation failed: " + e.details
	}

	return errors.Wrap(e.err, "store operation failed: "+e.details).Error()
}

// Unwrap exposes the underlying store error.
func (e *StoreError) Unwrap() error {
	return e.err
}

// IsUniqueViolation reports whether this failure came from a unique index.
func (e *StoreError) IsUniqueViolation() bool {
	return e.unique
}

// HTTPCode returns the HTTP status code
func (e *StoreError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StoreError) ErrorCode() string {
	return "STORE_FAILED"
}

// Message returns the user-friendly error message
func (e *StoreError) Message() string {
	return "internal error"
}

// Details returns detailed error information
func (e *StoreError) Details() string {
	return e.details
}

// IsUniqueViolation reports whether err carries a StoreError raised by a unique index.
func IsUniqueViolation(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.IsUniqueViolation()
	}

	return false
}
