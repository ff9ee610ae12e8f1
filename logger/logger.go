// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger provides a context-aware logger built on [slog] and
// rendered by [tint].
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// Logger wraps an [slog.Logger] together with the [slog.LevelVar] that
// controls it.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
}

// Options configure a [Logger] created by [New].
type Options struct {
	// Level is the initial level. The zero value is LevelInfo.
	Level slog.Level
	// NoColor disables ANSI colors even when the output is a terminal.
	NoColor bool
	// TimeFormat overrides the timestamp layout. An empty value keeps
	// timestamps off, which suits a batch tool run from a shell.
	TimeFormat string
}

// New creates a [Logger] writing to w. Colors are used only if w is a
// terminal and opts.NoColor is false.
func New(w io.Writer, opts Options) *Logger {
	level := new(slog.LevelVar)
	level.Set(opts.Level)
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    opts.NoColor || !IsTerminal(w),
		TimeFormat: opts.TimeFormat,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if opts.TimeFormat == "" && len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(h), Level: level}
}

// IsTerminal reports whether w is a terminal. It is a variable so tests can
// replace it.
var IsTerminal = func(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

var defaultLogger = &Logger{
	Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	Level:  new(slog.LevelVar),
}

// Put returns a new context with the provided [Logger].
func Put(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Get retrieves the [Logger] from the context.
//
// If the context has no [Logger], it returns a default [Logger] that discards
// all messages.
func Get(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// IsDefault reports whether l is the discarding default [Logger].
func IsDefault(l *Logger) bool { return l == defaultLogger }

// Err returns an attribute holding err, highlighted by the handler.
func Err(err error) slog.Attr { return tint.Err(err) }

// Since returns an attribute holding the time elapsed since start.
func Since(start time.Time) slog.Attr {
	return slog.Duration("took", time.Since(start).Round(time.Millisecond))
}

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs a warning message.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
