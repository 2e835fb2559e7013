package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_TagsServerSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	r := gin.New()
	r.Use(RequestID(), Tracing("test-service"), TraceAttributes())
	r.GET("/ok/:id", func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-1")
		c.Status(http.StatusOK)
	})
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/ok/42", nil)
	req.Header.Set(RequestIDHeader, "req-trace")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	spans := sr.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Contains(t, ok.Name(), "/ok/:id")
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ok.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "req-trace", attrs["request_id"].AsString())
	assert.Equal(t, "user-1", attrs["user_id"].AsString())
	assert.NotEqual(t, codes.Error, ok.Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
