package utils

import "context"

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// TraceIdKey is the context key under which the trace id of the current operation is stored.
var TraceIdKey = &contextKey{"traceId"}

// WithTraceId returns a copy of ctx carrying a freshly generated trace id, unless ctx already has one.
func WithTraceId(ctx context.Context) context.Context {
	if _, ok := ctx.Value(TraceIdKey).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, TraceIdKey, GenerateTraceId())
}
