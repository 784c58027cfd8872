// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// WSLogger provides structured logging for WebSocket operations.
type WSLogger struct {
	logger *Logger
}

// NewWSLogger creates a new WSLogger.
func NewWSLogger() *WSLogger {
	return &WSLogger{logger: GlobalLogger}
}

// LogConnect logs a WebSocket connection event.
func (l *WSLogger) LogConnect(ctx context.Context, userID uuid.UUID) {
	l.logger.InfoContext(ctx, "websocket connected",
		slog.String("user_id", userID.String()),
	)
}

// LogDisconnect logs a WebSocket disconnection event.
func (l *WSLogger) LogDisconnect(ctx context.Context, userID uuid.UUID, reason string) {
	l.logger.InfoContext(ctx, "websocket disconnected",
		slog.String("user_id", userID.String()),
		slog.String("reason", reason),
	)
}

// LogError logs a WebSocket error event.
func (l *WSLogger) LogError(ctx context.Context, userID uuid.UUID, err error, eventType string) {
	l.logger.ErrorContext(ctx, "websocket error",
		slog.String("user_id", userID.String()),
		slog.String("event_type", eventType),
		slog.String("error", err.Error()),
	)
}
