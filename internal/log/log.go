// Package log configures the process-wide slog logger for go-parley.
package log

import (
	"log/slog"
	"os"
	"sync"
)

var once sync.Once

// Init initializes the default slog logger with the specified level.
// Valid levels: "debug", "info", "warn", "error".
//
// The conversation UI owns stdout, so log output goes to stderr where it
// cannot interleave with menus and prompts. GO_ENV=production switches the
// handler to JSON for log collectors.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: lvl}

		var handler slog.Handler
		if os.Getenv("GO_ENV") == "production" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}

		slog.SetDefault(slog.New(handler))
	})
}
