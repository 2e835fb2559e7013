package middleware

import (
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

// abortWithError stops the chain and writes the error envelope with the
// status mapped from code
func abortWithError(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message)
	resp.RequestID = c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), resp)
}
