// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/rpsg-tech/clm-sub005/internal/pkg/logger"
)

// SetupTestLogger returns a logger that discards records below warning.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	return logger.NewFromHandler(slog.NewTextHandler(&testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// CaptureLogger returns a logger and the buffer it writes to.
func CaptureLogger(t *testing.T) (logger.Logger, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	return logger.NewFromHandler(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// SafeBuffer is a bytes.Buffer guarded for concurrent writers.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
