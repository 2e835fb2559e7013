package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

// Success sends a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessMessage sends a 200 response with a message and optional data
func (h *BaseHandler) SuccessMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message, data))
}

// Created sends a 201 response with a message and data
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewMessageResponse(message, data))
}

// Paginated sends a 200 response with items and pagination metadata
func Paginated[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// Error sends an error envelope with the status mapped from the API code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	resp := dto.NewErrorResponse(code, message)
	resp.RequestID = c.GetString(middleware.RequestIDKey)
	c.JSON(dto.GetHTTPStatus(code), resp)
}

// HandleError converts domain errors to responses. Anything else is logged
// and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := c.GetString(middleware.RequestIDKey)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code != dto.ErrCodeInternal {
			resp := dto.NewErrorResponse(code, domainErr.Message)
			resp.Details = dto.FieldErrorsFrom(domainErr.Violations)
			resp.RequestID = requestID
			c.JSON(dto.GetHTTPStatus(code), resp)
			return
		}
	}

	logger.FromContextOr(c.Request.Context(), h.logger).Error("Request failed",
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	h.Error(c, dto.ErrCodeInternal, "Internal server error")
}

// BindJSON decodes the body into obj and answers malformed or oversized
// bodies itself. It returns false when the handler should stop.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
			return false
		}
		h.Error(c, dto.ErrCodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}

// pageRequest reads the page and limit query parameters. Missing or
// malformed values fall back to the defaults.
func pageRequest(c *gin.Context) shared.PageRequest {
	return shared.PageRequest{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}.Normalize()
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
