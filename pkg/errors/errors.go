// Package errors provides structured error handling for the application
// with error codes, metadata and HTTP status mapping
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeMenuNotFound   ErrorCode = "MENU_NOT_FOUND"
	CodeUnknownProfile ErrorCode = "UNKNOWN_PROFILE"
	CodeSlotOutOfRange ErrorCode = "SLOT_OUT_OF_RANGE"
	CodePoolTooSmall   ErrorCode = "POOL_TOO_SMALL"
	CodeDatasetError   ErrorCode = "DATASET_ERROR"
)

// AppError represents an application error with structured information
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeUnknownProfile, CodeSlotOutOfRange:
		return http.StatusBadRequest
	case CodeNotFound, CodeMenuNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodePoolTooSmall:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Details:    details,
		StackTrace: getStackTrace(),
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Business domain specific errors

// NewMenuNotFoundError creates a menu not found error
func NewMenuNotFoundError(menuID string) *AppError {
	return NewAppError(
		CodeMenuNotFound,
		"Menu not found",
		fmt.Sprintf("Menu with ID %s is not held by this instance", menuID),
	).WithMetadata("menu_id", menuID)
}

// NewUnknownProfileError creates an unknown profile error
func NewUnknownProfileError(profile string) *AppError {
	return NewAppError(
		CodeUnknownProfile,
		"Unknown profile",
		fmt.Sprintf("Profile %q is not one of budget, fitness, gourmet, balanced", profile),
	).WithMetadata("profile", profile)
}

// NewSlotOutOfRangeError creates a slot index error
func NewSlotOutOfRangeError(slot int) *AppError {
	return NewAppError(
		CodeSlotOutOfRange,
		"Slot index out of range",
		fmt.Sprintf("Slot %d is outside the 21-slot weekly plan", slot),
	).WithMetadata("slot", slot)
}

// NewPoolTooSmallError creates an input-shortfall error for pools that
// cannot fill the structural quotas at all
func NewPoolTooSmallError(cause error) *AppError {
	return NewAppError(
		CodePoolTooSmall,
		"Candidate pool too small",
		"The candidate pool cannot fill 7 breakfast and 14 main slots",
	).WithCause(cause)
}

// NewDatasetError creates an ingestion error
func NewDatasetError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatasetError,
		"Dataset ingestion failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// getStackTrace captures the current stack trace
func getStackTrace() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")
	// Skip the first lines which are this function and the constructor
	if len(lines) > 5 {
		lines = lines[5:]
	}
	return strings.Join(lines, "\n")
}

// IsAppError checks whether an error is an AppError
func IsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}
