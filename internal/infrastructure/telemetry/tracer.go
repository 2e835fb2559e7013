// Package telemetry wires OpenTelemetry tracing for the shop API.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config selects whether spans leave the process and where they go.
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	ServiceVersion    string
	Insecure          bool

	// Metrics and logs go to the same collector, each on its own switch.
	MetricsEnabled  bool
	MetricsInterval time.Duration
	LogsEnabled     bool
}

// TracerProvider is a thin handle over the SDK provider. When tracing is
// off, sdk is nil and the global no-op provider stays installed.
type TracerProvider struct {
	sdk *sdktrace.TracerProvider
	log *zap.Logger
}

// NewTracerProvider builds an OTLP/gRPC pipeline from cfg and installs it,
// together with W3C trace-context and baggage propagation, as the global
// provider.
func NewTracerProvider(ctx context.Context, cfg Config, log *zap.Logger) (*TracerProvider, error) {
	if !cfg.Enabled {
		log.Info("Tracing disabled")
		return &TracerProvider{log: log}, nil
	}

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRatio)),
	)
	otel.SetTracerProvider(sdk)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("Tracing enabled",
		zap.String("endpoint", cfg.CollectorEndpoint),
		zap.String("service", cfg.ServiceName),
		zap.Float64("ratio", cfg.SamplingRatio),
	)
	return &TracerProvider{sdk: sdk, log: log}, nil
}

func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}
	return exp, nil
}

func serviceResource(cfg Config) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("trace resource: %w", err)
	}
	return res, nil
}

// sampler keeps the parent's decision; root spans are sampled by ratio,
// clamped to [0, 1].
func sampler(ratio float64) sdktrace.Sampler {
	root := sdktrace.TraceIDRatioBased(ratio)
	if ratio >= 1 {
		root = sdktrace.AlwaysSample()
	} else if ratio <= 0 {
		root = sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(root)
}

// IsEnabled reports whether spans are exported.
func (tp *TracerProvider) IsEnabled() bool { return tp.sdk != nil }

// Tracer returns a tracer from the SDK provider, or the global one when off.
func (tp *TracerProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	if tp.sdk == nil {
		return otel.GetTracerProvider().Tracer(name, opts...)
	}
	return tp.sdk.Tracer(name, opts...)
}

// Shutdown flushes buffered spans, giving up after ten seconds.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := tp.sdk.Shutdown(ctx); err != nil {
		tp.log.Warn("Tracer shutdown incomplete", zap.Error(err))
		return fmt.Errorf("tracer shutdown: %w", err)
	}
	return nil
}
