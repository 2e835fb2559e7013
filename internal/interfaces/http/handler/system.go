package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the API root, health and fallback routes
type SystemHandler struct {
	BaseHandler
	version   string
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, db Pinger, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{logger: logger},
		version:     version,
		db:          db,
		startTime:   time.Now(),
	}
}

// APIInfoResponse describes the API entry points
type APIInfoResponse struct {
	Message       string            `json:"message" example:"Welcome to the E-commerce API"`
	Version       string            `json:"version" example:"1.0.0"`
	Documentation string            `json:"documentation" example:"/docs"`
	Endpoints     map[string]string `json:"endpoints"`
}

// Info godoc
// @ID           getAPIInfo
// @Summary      API information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIInfoResponse
// @Router       / [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, APIInfoResponse{
		Message:       "Welcome to the E-commerce API",
		Version:       h.version,
		Documentation: "/docs",
		Endpoints: map[string]string{
			"users":    "/api/users",
			"products": "/api/products",
		},
	})
}

// HealthResponse reports liveness and database reachability
type HealthResponse struct {
	Status    string  `json:"status" example:"OK"`
	Timestamp string  `json:"timestamp" example:"2024-01-23T12:00:00Z"`
	Uptime    float64 `json:"uptime" example:"5400.2"`
	Database  string  `json:"database" example:"connected"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Uptime in seconds and a database ping; 503 when the database is unreachable
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Seconds(),
		Database:  "connected",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Health check database ping failed", zap.Error(err))
		resp.Status = "DEGRADED"
		resp.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NotFound answers unknown routes
func (h *SystemHandler) NotFound(c *gin.Context) {
	h.Error(c, dto.ErrCodeRouteNotFound, "Route not found")
}
