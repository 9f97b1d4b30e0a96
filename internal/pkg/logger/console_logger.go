package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
)

// NewConsoleLogger creates a logger writing logfmt-style text records to w
func NewConsoleLogger(level string, w io.Writer) Logger {
	return NewFromHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// consoleStream maps logger.output onto a process stream
func consoleStream(output string) io.Writer {
	if output == config.LogOutputStderr {
		return os.Stderr
	}
	return os.Stdout
}
