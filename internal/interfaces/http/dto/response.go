package dto

import "github.com/ecommerce/backend/internal/domain/shared"

// Response is the envelope of every API response
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data,omitempty"`
	Pagination *shared.Pagination `json:"pagination,omitempty"`
	Error      string             `json:"error,omitempty" example:"ERR_NOT_FOUND"`
	Details    []FieldError       `json:"details,omitempty"`
	RequestID  string             `json:"requestId,omitempty"`
}

// FieldError is a single validation failure
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"Please provide a valid email"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewMessageResponse creates a success response with a message
func NewMessageResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// NewPaginatedResponse creates a success response with pagination metadata
func NewPaginatedResponse[T any](page shared.Paginated[T]) Response {
	p := page.Pagination
	return Response{Success: true, Data: page.Items, Pagination: &p}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{Success: false, Error: code, Message: message}
}

// FieldErrorsFrom converts domain violations to response details
func FieldErrorsFrom(violations []shared.Violation) []FieldError {
	if len(violations) == 0 {
		return nil
	}
	out := make([]FieldError, len(violations))
	for i, v := range violations {
		out[i] = FieldError{Field: v.Field, Message: v.Message}
	}
	return out
}
