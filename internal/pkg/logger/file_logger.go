package logger

import (
	"log/slog"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"

	"github.com/natefinch/lumberjack"
)

// NewFileLogger creates a logger writing JSON records to the rotated file
// described by settings. JSON keeps audit-relevant keys such as org, user and
// request_id queryable once the file is shipped.
func NewFileLogger(settings *config.LoggerSettings) Logger {
	writer := &lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   settings.Compress,
	}
	return NewFromHandler(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(settings.LogLevel)}))
}
