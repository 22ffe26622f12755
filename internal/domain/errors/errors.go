// Package errors defines application-level errors carrying HTTP status and
// business error codes, so the delivery layer can translate domain failures
// into consistent API responses.
package errors

import (
	"net/http"

	"kindred/internal/errors"
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
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
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

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Profile-related errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"Profile not found",
		"",
	)

	ErrProfileIncomplete = NewBaseError(
		http.StatusUnprocessableEntity,
		"PROFILE_INCOMPLETE",
		"Purpose profile is incomplete, finish onboarding to see matches",
		"",
	)

	ErrProfileInactive = NewBaseError(
		http.StatusForbidden,
		"PROFILE_INACTIVE",
		"This profile is not active",
		"",
	)

	// Matching-related errors
	ErrSelfMatch = NewBaseError(
		http.StatusBadRequest,
		"SELF_MATCH",
		"A profile cannot be matched against itself",
		"",
	)

	ErrUnknownTaxonomyValue = NewBaseError(
		http.StatusUnprocessableEntity,
		"UNKNOWN_TAXONOMY_VALUE",
		"Purpose profile references an unknown taxonomy value",
		"",
	)

	ErrCandidateNotEligible = NewBaseError(
		http.StatusNotFound,
		"CANDIDATE_NOT_ELIGIBLE",
		"Candidate is not available for matching",
		"",
	)

	// Pagination errors
	ErrInvalidPageToken = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PAGE_TOKEN",
		"The page token is invalid or expired",
		"",
	)

	// Taxonomy administration errors
	ErrTaxonomyReloadFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"TAXONOMY_RELOAD_FAILED",
		"Taxonomy configuration was rejected, previous version keeps serving",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Generic errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)
