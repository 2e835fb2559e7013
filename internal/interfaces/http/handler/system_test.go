package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func newSystemRouter(db Pinger) *gin.Engine {
	h := NewSystemHandler("1.0.0", db, zap.NewNop())
	router := gin.New()
	router.GET("/", h.Info)
	router.GET("/health", h.Health)
	router.NoRoute(h.NotFound)
	return router
}

func TestSystemHandler_Info(t *testing.T) {
	rec := performRequest(t, newSystemRouter(stubPinger{}), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var info APIInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "/docs", info.Documentation)
	assert.Equal(t, map[string]string{"users": "/api/users", "products": "/api/products"}, info.Endpoints)
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		rec := performRequest(t, newSystemRouter(stubPinger{}), http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var health HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, "OK", health.Status)
		assert.Equal(t, "connected", health.Database)
		assert.NotEmpty(t, health.Timestamp)
		assert.GreaterOrEqual(t, health.Uptime, 0.0)
	})

	t.Run("database down", func(t *testing.T) {
		rec := performRequest(t, newSystemRouter(stubPinger{err: errors.New("no reachable servers")}), http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var health HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, "disconnected", health.Database)
	})
}

func TestSystemHandler_NotFound(t *testing.T) {
	rec := performRequest(t, newSystemRouter(stubPinger{}), http.MethodGet, "/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, dto.ErrCodeRouteNotFound, resp.Error)
	assert.Equal(t, "Route not found", resp.Message)
}
