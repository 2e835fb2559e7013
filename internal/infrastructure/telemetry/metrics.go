package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const defaultMetricsInterval = time.Minute

// MeterProvider pushes metrics to the collector on a fixed interval. When
// metrics are off, sdk is nil and the global no-op meter stays installed.
type MeterProvider struct {
	sdk *sdkmetric.MeterProvider
	log *zap.Logger
}

// NewMeterProvider builds an OTLP/gRPC metrics pipeline from cfg and
// installs it as the global meter provider.
func NewMeterProvider(ctx context.Context, cfg Config, log *zap.Logger) (*MeterProvider, error) {
	if !cfg.MetricsEnabled {
		log.Info("Metrics disabled")
		return &MeterProvider{log: log}, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}
	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = defaultMetricsInterval
	}
	sdk := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(sdk)

	log.Info("Metrics enabled",
		zap.String("endpoint", cfg.CollectorEndpoint),
		zap.Duration("interval", interval),
	)
	return &MeterProvider{sdk: sdk, log: log}, nil
}

// IsEnabled reports whether metrics are exported.
func (mp *MeterProvider) IsEnabled() bool { return mp.sdk != nil }

// Meter returns a meter from the SDK provider, or the global one when off.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.sdk == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.sdk.Meter(name, opts...)
}

// Shutdown pushes the last collection and stops the reader.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := mp.sdk.Shutdown(ctx); err != nil {
		mp.log.Warn("Meter shutdown incomplete", zap.Error(err))
		return fmt.Errorf("meter shutdown: %w", err)
	}
	return nil
}
