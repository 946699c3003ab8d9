package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces redacted text.
const MaskValue = "***REDACTED***"

// controlKeys are attribute keys whose values are always masked entirely.
var controlKeys = map[string]bool{
	"control_url":            true,
	"ws_url":                 true,
	"debugger_url":           true,
	"websocketdebuggerurl":   true,
	"websocket_debugger_url": true,
	"authorization":          true,
	"cookie":                 true,
}

// devtoolsURL matches the session part of a DevTools WebSocket URL, e.g.
// ws://127.0.0.1:9222/devtools/browser/3f1c...
var devtoolsURL = regexp.MustCompile(`(wss?://[^\s/"']+/devtools/[a-z]+/)[A-Za-z0-9._-]+`)

// RedactingHandler wraps an slog.Handler and masks DevTools session URLs
// before records reach it.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler creates a RedactingHandler. A nil handler means
// slog.Default().Handler().
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactingHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the message and attributes and passes the record on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, Redact(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs redacts attrs before attaching them.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup returns a handler that nests attributes under name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		if controlKeys[strings.ToLower(a.Key)] && a.Value.String() != "" {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, Redact(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			msg := err.Error()
			if red := Redact(msg); red != msg {
				return slog.String(a.Key, red)
			}
		}
	}
	return a
}

// Redact masks the session part of every DevTools WebSocket URL in s,
// keeping scheme and host.
func Redact(s string) string {
	if !strings.Contains(s, "/devtools/") {
		return s
	}
	return devtoolsURL.ReplaceAllString(s, "${1}"+MaskValue)
}

// NewLogger creates a text logger. verbose selects Debug, otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON logger with the same levels as NewLogger.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
