package logging

import (
	"log/slog"
	"os"
	"strings"
)

// ServiceName tags every log record emitted by this process.
const ServiceName = "jalanma-backend"

// Setup installs the bootstrap JSON logger on stdout. It runs before the
// database is up; main later swaps in the fan-out that also persists errors.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: LevelFromEnv(),
	})
	slog.SetDefault(slog.New(handler).With("service", ServiceName))
}

// LevelFromEnv reads LOG_LEVEL (debug, info, warn, error), defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
