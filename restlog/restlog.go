// Package restlog provides the structured logging setup used by the
// dispatch core: a JSON slog logger with an extra Trace level below
// Debug, and request-id propagation through the context.
package restlog

import (
	"context"
	"io"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug. The dispatch core checks this
// level before assembling per-request match details, so the cost is paid
// only when trace logging is on.
const LevelTrace = slog.Level(-8)

type requestIDKey struct{}

// WithRequestID stores a request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in the context, or an empty
// string when none is present.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// New returns a JSON logger writing to w at the given level. Records
// logged with a context carrying a request ID get a requestId attribute
// automatically, and LevelTrace renders as "TRACE" instead of the
// default "DEBUG-4".
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})

	return slog.New(&contextHandler{Handler: handler})
}

// contextHandler decorates records with the request ID from the context.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("requestId", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
