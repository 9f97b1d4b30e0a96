// Package logger provides the process-wide structured logger used by the CLM
// binaries. Messages carry key/value pairs in the log/slog style.
package logger

import (
	"context"
	"log/slog"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	// With returns a Logger that adds keyvals to every record
	With(keyvals ...interface{}) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// NewFromHandler wraps an arbitrary slog handler
func NewFromHandler(handler slog.Handler) Logger {
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, keyvals ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelDebug, msg, keyvals...)
}

func (l *slogLogger) Info(msg string, keyvals ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, keyvals...)
}

func (l *slogLogger) Warn(msg string, keyvals ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelWarn, msg, keyvals...)
}

func (l *slogLogger) Error(msg string, keyvals ...interface{}) {
	l.logger.Log(context.Background(), slog.LevelError, msg, keyvals...)
}

func (l *slogLogger) With(keyvals ...interface{}) Logger {
	return &slogLogger{logger: l.logger.With(keyvals...)}
}
