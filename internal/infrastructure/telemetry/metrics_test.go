package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestNewMeterProvider_Enabled(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.Config{
		CollectorEndpoint: "localhost:4317",
		ServiceName:       "test-service",
		Insecure:          true,
		MetricsEnabled:    true,
		MetricsInterval:   time.Hour,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, mp.IsEnabled())

	counter, err := mp.Meter("test").Int64Counter("test_total")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = mp.Shutdown(shutdownCtx)
}
