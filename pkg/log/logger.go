package log

import (
	"io"
	"log/slog"
)

// New constructs a text slog.Logger writing to w at the given level.
func New(w io.Writer, service, version string, lvl slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler).With(
		slog.String("service", service),
		slog.String("version", version))
}
