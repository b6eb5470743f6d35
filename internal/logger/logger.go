// Package logger writes leveled, key=value log lines tagged with the
// request id carried by the context.
package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
)

var (
	level = new(slog.LevelVar)

	levelNames = map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}

	base = slog.New(&lineHandler{level: level})
)

// SetLevel sets the minimum level from its name. Unknown names mean info.
func SetLevel(name string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		l = slog.LevelInfo
	}
	level.Set(l)
}

// lineHandler renders records as "[level] key=value ... message" through
// the standard logger, so log.SetOutput and log.SetFlags still apply.
type lineHandler struct {
	level slog.Leveler
	attrs []slog.Attr
}

func (h *lineHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString("[" + strings.ToLower(r.Level.String()) + "]")
	write := func(a slog.Attr) bool {
		b.WriteString(" " + a.Key + "=" + a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	if r.Message != "" {
		b.WriteString(" " + r.Message)
	}
	log.Print(b.String())
	return nil
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &lineHandler{level: h.level, attrs: merged}
}

// WithGroup is a no-op; lines are flat.
func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

type requestIDKey struct{}

// WithRequestID stores the request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id, or "" when there is none.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	sl *slog.Logger
}

// New creates a logger bound to the request in ctx.
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{sl: base.With("request_id", requestID)}
}

// Background is a logger for work that is not tied to a request.
func Background() *Logger {
	return &Logger{sl: base.With("request_id", "background")}
}

func (l *Logger) printf(lvl slog.Level, operation, format string, args ...any) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, lvl) {
		return
	}
	l.sl.Log(ctx, lvl, fmt.Sprintf(format, args...), "operation", operation)
}

func (l *Logger) LogError(operation string, err error) {
	l.printf(slog.LevelError, operation, "error=%v", err)
}

func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.printf(slog.LevelError, operation, format, args...)
}

func (l *Logger) LogInfo(operation string, message string) {
	l.printf(slog.LevelInfo, operation, "message=%s", message)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.printf(slog.LevelInfo, operation, format, args...)
}

func (l *Logger) LogWarn(operation string, message string) {
	l.printf(slog.LevelWarn, operation, "message=%s", message)
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.printf(slog.LevelWarn, operation, format, args...)
}

func (l *Logger) LogDebugf(operation string, format string, args ...any) {
	l.printf(slog.LevelDebug, operation, format, args...)
}
