package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// DebugLogger returns a logger writing debug-level text to w
func DebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
