// Package logging provides the structured logger shared by bamboo's
// components. Output goes to stderr at the level named by the
// BAMBOO_LOG_LEVEL environment variable (debug, info, warn, error), or INFO
// if it is unset.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "BAMBOO_LOG_LEVEL"

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component. An empty component yields the
// base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = newLogger(os.Stderr, parseLevel(os.Getenv(LevelEnv)))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// parseLevel converts a level name to a slog.Level, case-insensitively.
// Unknown names mean INFO.
func parseLevel(value string) slog.Level {
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
