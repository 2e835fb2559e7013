package testutil

import (
	"net/http"
	"testing"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEchoEngine() *gin.Engine {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidJSON, "Invalid request body"))
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, dto.NewSuccessResponse(body))
	})
	engine.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "nope"))
	})
	return engine
}

func TestAPIClient(t *testing.T) {
	client := NewAPIClient(t, newEchoEngine())

	t.Run("sends json and decodes envelope", func(t *testing.T) {
		resp := client.Post("/echo", map[string]any{"name": "x"})
		AssertSuccess(t, resp, http.StatusOK)
		data := DataAs[map[string]string](t, resp)
		assert.Equal(t, "x", data["name"])
		assert.Empty(t, data["auth"])
	})

	t.Run("bearer token", func(t *testing.T) {
		resp := client.WithToken("abc").Post("/echo", map[string]any{})
		assert.Equal(t, "Bearer abc", DataAs[map[string]string](t, resp)["auth"])
	})

	t.Run("error envelope", func(t *testing.T) {
		AssertError(t, client.Get("/missing"), http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
