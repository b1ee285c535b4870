package mealbook

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a caller-supplied request ID to ctx. The transport
// stamps it on the outgoing X-Request-ID header and audit events carry it;
// when absent, a fresh UUID is generated per request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
