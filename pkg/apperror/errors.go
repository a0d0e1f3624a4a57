package apperror

import (
	"errors"
	"net/http"
)

// Kind identifies the category of a rejected operation. Every failure the
// settlement engine produces carries exactly one kind, so callers can react
// without parsing messages.
type Kind string

const (
	KindAlreadyOpen       Kind = "already_open"
	KindSettlementNotOpen Kind = "settlement_not_open"
	KindInvalidAmount     Kind = "invalid_amount"
	KindInsufficientCash  Kind = "insufficient_cash"
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewAlreadyOpenError signals that a settlement already exists for the day
func NewAlreadyOpenError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindAlreadyOpen, Message: message}
}

// NewSettlementNotOpenError signals a mutation against a settlement that is
// not in the open state
func NewSettlementNotOpenError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Kind: KindSettlementNotOpen, Message: message}
}

// NewInvalidAmountError signals a negative or zero amount where a positive
// value is required
func NewInvalidAmountError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidAmount, Message: message}
}

// NewInsufficientCashError signals a withdrawal that would drive the drawer
// balance negative
func NewInsufficientCashError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInsufficientCash, Message: message}
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

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether the error is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
