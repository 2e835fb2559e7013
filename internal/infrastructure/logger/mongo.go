package logger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

// CommandMonitorOptions configures NewCommandMonitor
type CommandMonitorOptions struct {
	// SlowThreshold logs successful commands slower than this at warn level.
	// Zero disables slow command logging.
	SlowThreshold time.Duration
	// LogCommands logs every started and succeeded command at debug level
	LogCommands bool
}

// NewCommandMonitor returns a MongoDB command monitor that writes to zap.
// Failed commands are logged at error level, slow ones at warn.
func NewCommandMonitor(zapLogger *zap.Logger, opts CommandMonitorOptions) *event.CommandMonitor {
	l := zapLogger.Named("mongo")

	fields := func(ctx context.Context, name string, requestID int64) []zap.Field {
		f := []zap.Field{
			zap.String("command", name),
			zap.Int64("mongo_request_id", requestID),
		}
		if id := GetRequestID(ctx); id != "" {
			f = append(f, zap.String("request_id", id))
		}
		return f
	}

	return &event.CommandMonitor{
		Started: func(ctx context.Context, e *event.CommandStartedEvent) {
			if !opts.LogCommands {
				return
			}
			f := append(fields(ctx, e.CommandName, e.RequestID), zap.String("database", e.DatabaseName))
			l.Debug("MongoDB command started", f...)
		},
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			f := append(fields(ctx, e.CommandName, e.RequestID), zap.Duration("elapsed", e.Duration))
			switch {
			case opts.SlowThreshold > 0 && e.Duration > opts.SlowThreshold:
				l.Warn("Slow MongoDB command", append(f, zap.Duration("threshold", opts.SlowThreshold))...)
			case opts.LogCommands:
				l.Debug("MongoDB command succeeded", f...)
			}
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			f := append(fields(ctx, e.CommandName, e.RequestID),
				zap.Duration("elapsed", e.Duration),
				zap.String("failure", e.Failure),
			)
			l.Error("MongoDB command failed", f...)
		},
	}
}
