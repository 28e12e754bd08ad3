package errors

import (
	"errors"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrSessionExpired   = errors.New("workflow session expired")
	ErrStateCorrupt     = errors.New("workflow state corrupt")
	ErrValidationFailed = errors.New("validation failed")
	ErrDataValidation   = errors.New("data validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// Error codes surfaced to clients
const (
	CodeNotFound             = "NOT_FOUND"
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeSessionExpired       = "SESSION_EXPIRED"
	CodeDataValidationFailed = "DATA_VALIDATION_FAILED"
	CodeStorageFailure       = "STORAGE_FAILURE"
	CodeInternal             = "INTERNAL_ERROR"
)

// FieldViolation is a single field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is an ordered list of field violations.
type ValidationErrors []FieldViolation

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, f := range v {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (v ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

// AppError represents an application error with HTTP status mapping
type AppError struct {
	Status     int              `json:"-"`
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Violations ValidationErrors `json:"violations,omitempty"`
	Err        error            `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeDuplicateEmail, message, ErrDuplicateEmail)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// ValidationFailed wraps an ordered violation list into an AppError.
func ValidationFailed(violations ValidationErrors) *AppError {
	return &AppError{
		Status:     http.StatusBadRequest,
		Code:       CodeValidationFailed,
		Message:    "one or more fields are invalid",
		Violations: violations,
		Err:        ErrValidationFailed,
	}
}
