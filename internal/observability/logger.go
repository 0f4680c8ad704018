package observability

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a colorized slog logger writing to w.
// Debug records are emitted only when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// SetupLogger installs NewLogger(w, verbose) as the default slog logger.
func SetupLogger(w io.Writer, verbose bool) *slog.Logger {
	logger := NewLogger(w, verbose)
	slog.SetDefault(logger)
	return logger
}
