package common

import (
	"context"
)

// RequestContext holds per-request identity populated by the HTTP middleware.
// Subject comes from a validated bearer token; CorrelationID from X-Request-ID
// or a generated value.
type RequestContext struct {
	Subject       string
	CorrelationID string
}

type contextKey int

const requestContextKey contextKey = iota

// WithRequestContext stores a RequestContext in the request context.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFromContext retrieves the RequestContext from context, or nil if absent.
func RequestContextFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// ResolveSubject returns the token subject from context, or "anonymous" when none is present.
func ResolveSubject(ctx context.Context) string {
	if rc := RequestContextFromContext(ctx); rc != nil && rc.Subject != "" {
		return rc.Subject
	}
	return "anonymous"
}

// ResolveCorrelationID returns the correlation ID from context, or an empty string.
func ResolveCorrelationID(ctx context.Context) string {
	if rc := RequestContextFromContext(ctx); rc != nil {
		return rc.CorrelationID
	}
	return ""
}
