package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a console slog.Logger; level comes from SOCIALMON_LOG_LEVEL
// when value is empty. Logs go to stderr so JSON previews on stdout stay
// pipeable.
func New(value string) *slog.Logger {
	if value == "" {
		value = os.Getenv("SOCIALMON_LOG_LEVEL")
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromString(value),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
