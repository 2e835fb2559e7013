package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Bucket bounds for request latency, in seconds.
var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(m metric.Meter) (*httpInstruments, error) {
	requests, err := m.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests served"), metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	duration, err := m.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...))
	if err != nil {
		return nil, err
	}
	inFlight, err := m.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in progress"), metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	return &httpInstruments{requests: requests, duration: duration, inFlight: inFlight}, nil
}

// HTTPMetrics records request count, latency and in-flight requests per
// route template. Unmatched paths share the route "unknown". If the
// instruments cannot be created the middleware only passes through.
func HTTPMetrics(m metric.Meter, log *zap.Logger) gin.HandlerFunc {
	inst, err := newHTTPInstruments(m)
	if err != nil {
		log.Warn("HTTP metrics unavailable", zap.Error(err))
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		inst.inFlight.Add(ctx, 1)

		c.Next()

		inst.inFlight.Add(ctx, -1)
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		}
		inst.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
		attrs = append(attrs, attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())))
		inst.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
