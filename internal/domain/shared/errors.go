package shared

import "errors"

// Violation describes a single field that failed validation
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError represents a domain-level error
type DomainError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that
// errors created with a custom message still match the sentinel.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	if e.Code == t.Code {
		return true
	}
	// a wrong current password is a credential failure too
	return e.Code == CodeInvalidPassword && t.Code == CodeInvalidCredentials
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidPassword     = "INVALID_PASSWORD"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeUnauthorized        = "UNAUTHORIZED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidation          = NewDomainError(CodeValidation, "Validation error")
	ErrInvalidCredentials  = NewDomainError(CodeInvalidCredentials, "Invalid email or password")
	ErrInvalidPassword     = NewDomainError(CodeInvalidPassword, "Current password is incorrect")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)

// NotFound returns a not-found error with a resource specific message
func NotFound(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// Conflict returns an already-exists error with a resource specific message
func Conflict(message string) *DomainError {
	return NewDomainError(CodeAlreadyExists, message)
}

// InvalidField returns a validation error for a single field
func InvalidField(field, message string) *DomainError {
	return &DomainError{
		Code:       CodeValidation,
		Message:    message,
		Violations: []Violation{{Field: field, Message: message}},
	}
}

// IsDomainError reports whether err is a DomainError with the given code
func IsDomainError(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// ViolationsOf extracts field violations from err, if any
func ViolationsOf(err error) []Violation {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Violations
	}
	return nil
}
