// Package log decorates slog handlers with request-scoped attributes.
package log

import (
	"context"
	"log/slog"

	"github.com/holiday-promo/api/internal/requestid"
)

// ContextHandler adds the request ID from the record's context, when one is
// present, before delegating to the wrapped handler.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(inner slog.Handler) ContextHandler {
	return ContextHandler{Handler: inner}
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}
