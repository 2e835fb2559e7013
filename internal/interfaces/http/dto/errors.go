package dto

import "net/http"

// API error codes returned in the "error" field of the envelope.
// Format: ERR_<DESCRIPTION>
const (
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation  = "ERR_VALIDATION"
	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeInvalidPassword    = "ERR_INVALID_PASSWORD"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeForbidden          = "ERR_FORBIDDEN"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeRouteNotFound       = "ERR_ROUTE_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInsufficientStock   = "ERR_INSUFFICIENT_STOCK"

	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeUnavailable     = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes.
// Duplicates, stock shortfalls and a wrong current password are client
// errors (400); only failed logins and token problems are 401.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeInvalidPassword:    http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeRouteNotFound:       http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusBadRequest,
	ErrCodeConcurrencyConflict: http.StatusBadRequest,
	ErrCodeInsufficientStock:   http.StatusBadRequest,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to API error codes
var domainErrorCodes = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"INVALID_PASSWORD":     ErrCodeInvalidPassword,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Unknown domain codes become ERR_INTERNAL.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
