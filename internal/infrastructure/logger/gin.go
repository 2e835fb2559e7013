package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GinLoggerKey is the gin context key holding the request-scoped logger
const GinLoggerKey = "logger"

// GinMiddleware attaches a request logger (request_id, method, path) to both
// the gin context and the request context, then writes one access line per
// request. Register it after the request ID middleware.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx, l := WithRequestID(c.Request.Context(), base, c.GetString("request_id"))
		l = l.With(zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Request = c.Request.WithContext(WithContext(ctx, l))
		c.Set(GinLoggerKey, l)

		c.Next()

		status := c.Writer.Status()
		if ce := l.Check(accessLevel(status), "HTTP Request"); ce != nil {
			ce.Write(accessFields(c, status, time.Since(start))...)
		}
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func accessFields(c *gin.Context, status int, latency time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("body_size", c.Writer.Size()),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields = append(fields, zap.String("query", q))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}
	return fields
}

// Recovery turns a panic into a logged error and a 500 envelope.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			id := c.GetString("request_id")
			base.Error("Panic recovered",
				zap.String("request_id", id),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("error", r),
				zap.Stack("stacktrace"),
			)
			body := gin.H{"success": false, "message": "Internal server error", "error": "ERR_INTERNAL"}
			if id != "" {
				body["requestId"] = id
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()
		c.Next()
	}
}

// GetGinLogger returns the request logger set by GinMiddleware, or a no-op.
func GetGinLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Value(GinLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
