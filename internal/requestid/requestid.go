// Package requestid threads a per-request correlation ID through context,
// response headers, and log records.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the canonical request-ID header. An ID already assigned by an
// upstream proxy is kept so traces line up across hops.
const Header = "X-Request-ID"

type ctxKey struct{}

func New() string {
	return uuid.NewString()
}

// NewContext returns a copy of ctx carrying the request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID attached to ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
