package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func succeeded(name string, d time.Duration) *event.CommandSucceededEvent {
	return &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: name, RequestID: 7, Duration: d},
	}
}

func TestCommandMonitor(t *testing.T) {
	t.Run("warns on slow commands", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		m := NewCommandMonitor(zap.New(core), CommandMonitorOptions{SlowThreshold: 100 * time.Millisecond})

		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-42")
		m.Succeeded(ctx, succeeded("find", 10*time.Millisecond))
		m.Succeeded(ctx, succeeded("aggregate", 300*time.Millisecond))

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "Slow MongoDB command", entries[0].Message)
		assert.Equal(t, "aggregate", entries[0].ContextMap()["command"])
		assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		m := NewCommandMonitor(zap.New(core), CommandMonitorOptions{})

		m.Failed(context.Background(), &event.CommandFailedEvent{
			CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert"},
			Failure:              "connection reset",
		})

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "connection reset", entries[0].ContextMap()["failure"])
	})

	t.Run("debug logging when enabled", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		m := NewCommandMonitor(zap.New(core), CommandMonitorOptions{LogCommands: true})

		m.Started(context.Background(), &event.CommandStartedEvent{CommandName: "find", DatabaseName: "shop"})
		m.Succeeded(context.Background(), succeeded("find", time.Millisecond))

		entries := recorded.All()
		require.Len(t, entries, 2)
		assert.Equal(t, "shop", entries[0].ContextMap()["database"])
		assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	})
}
