package apperror

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable category of an error, returned to clients as error_type
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindDuplicateEntry Kind = "DuplicateEntry"
	KindNotFound       Kind = "NotFound"
	KindTransientStore Kind = "TransientStoreError"
	KindInternal       Kind = "InternalError"
	KindUnauthorized   Kind = "Unauthorized"
	KindForbidden      Kind = "Forbidden"
	KindRateLimited    Kind = "RateLimited"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"error_type"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
	ErrTenantRequired = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Tenant context required"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewBadRequestError creates a validation error without field details
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewDuplicateEntryError reports a unique-key collision
func NewDuplicateEntryError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateEntry,
		Message: message,
		cause:   cause,
	}
}

// NewConflictError reports a write the current state of the ledger does not allow,
// such as deleting a record other records still point at
func NewConflictError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindValidation,
		Message: message,
		cause:   cause,
	}
}

// NewTransientStoreError reports that the store was unavailable; the operation may be retried
func NewTransientStoreError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindTransientStore,
		Message: "Storage temporarily unavailable, please retry",
		cause:   cause,
	}
}

// NewInternalError wraps an unexpected failure. The cause is kept for logging only.
func NewInternalError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

// KindOf returns the kind of err, InternalError for anything unclassified
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return GetAppError(err).Kind
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
