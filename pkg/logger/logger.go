// Package logger provides a slog-based structured application logger that
// stamps each record with the service name and the active trace id.
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// TraceIDFn extracts the trace id from the context, if tracing is active.
type TraceIDFn func(ctx context.Context) string

// Level represents a logging severity.
type Level slog.Level

// Supported logging levels.
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// Logger writes structured JSON records.
type Logger struct {
	handler   slog.Handler
	traceIDFn TraceIDFn
}

// New constructs a logger writing to w at the given minimum level. Every
// record carries the service name; traceIDFn may be nil.
func New(w io.Writer, minLevel Level, serviceName string, traceIDFn TraceIDFn) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(minLevel)})
	attrs := []slog.Attr{slog.String("service", serviceName)}
	return &Logger{handler: h.WithAttrs(attrs), traceIDFn: traceIDFn}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelDebug, msg, args)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelInfo, msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelWarn, msg, args)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, slog.LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level slog.Level, msg string, args []any) {
	if !l.handler.Enabled(ctx, level) {
		return
	}
	rec := slog.NewRecord(time.Now(), level, msg, 0)
	if l.traceIDFn != nil {
		if id := l.traceIDFn(ctx); id != "" {
			rec.Add("trace_id", id)
		}
	}
	rec.Add(args...)
	l.handler.Handle(ctx, rec)
}
