package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider batches log records to the collector. When logs are off,
// sdk is nil and Bridge returns the logger it is given.
type LoggerProvider struct {
	sdk  *sdklog.LoggerProvider
	name string
	log  *zap.Logger
}

// NewLoggerProvider builds an OTLP/gRPC log pipeline from cfg and installs
// it as the global log provider.
func NewLoggerProvider(ctx context.Context, cfg Config, log *zap.Logger) (*LoggerProvider, error) {
	if !cfg.LogsEnabled {
		return &LoggerProvider{log: log}, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exp, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp log exporter: %w", err)
	}
	res, err := serviceResource(cfg)
	if err != nil {
		return nil, err
	}

	sdk := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
	)
	global.SetLoggerProvider(sdk)

	log.Info("Log export enabled", zap.String("endpoint", cfg.CollectorEndpoint))
	return &LoggerProvider{sdk: sdk, name: cfg.ServiceName, log: log}, nil
}

// IsEnabled reports whether log records are exported.
func (lp *LoggerProvider) IsEnabled() bool { return lp.sdk != nil }

// Bridge returns a logger that writes to base's core and to the collector.
// Records below base's level are not exported either.
func (lp *LoggerProvider) Bridge(base *zap.Logger) *zap.Logger {
	if lp.sdk == nil {
		return base
	}
	var otelCore zapcore.Core = otelzap.NewCore(lp.name, otelzap.WithLoggerProvider(lp.sdk))
	if leveled, err := zapcore.NewIncreaseLevelCore(otelCore, base.Level()); err == nil {
		otelCore = leveled
	}
	return base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, otelCore)
	}))
}

// Shutdown exports buffered records and stops the processor.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.sdk == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := lp.sdk.Shutdown(ctx); err != nil {
		lp.log.Warn("Log provider shutdown incomplete", zap.Error(err))
		return fmt.Errorf("log provider shutdown: %w", err)
	}
	return nil
}
