// Package logging builds the zerolog logger used for diagnostics and carries
// it through context.Context. User-facing progress lines are printed by the
// commands themselves; the logger is for what happened underneath.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New returns a console logger writing to w at the given level name
// ("debug", "info", "warn", "error", "disabled"). Unknown names fall back
// to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: noColor(w)}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Set returns a copy of ctx carrying lg.
func Set(ctx context.Context, lg zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, lg)
}

// Get returns the logger stored in ctx, or a disabled logger.
func Get(ctx context.Context) zerolog.Logger {
	if lg, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return lg
	}
	return zerolog.Nop()
}

func noColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	return err != nil || info.Mode()&os.ModeCharDevice == 0
}
