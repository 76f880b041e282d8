package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Level defaults to info;
// set AUDITLINK_LOG_LEVEL=debug for local troubleshooting.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("AUDITLINK_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
