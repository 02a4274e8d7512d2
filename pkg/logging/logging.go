// Package logging provides the slog.Logger factory used by bobbin's test
// infrastructure and by programs that embed the library.
//
// Readers themselves never log; diagnostics belong to the caller. This
// package exists so the pieces around the readers (the ghmock server, example
// programs) configure logging one way.
//
// Log format is controlled by the LOG_FORMAT environment variable:
//
//	LOG_FORMAT=json    structured JSON, suitable for log aggregators (default)
//	LOG_FORMAT=text    human-readable key=value pairs, for local development
//
// Log level is controlled by LOG_LEVEL (debug, info, warn, error; default info).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a logger configured from environment variables, tagged with
// the given component name.
func New(component string) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "text", "console":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("component", component)
}

// Discard returns a logger that drops every record. Tests pass it to
// components whose output would only be noise.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
