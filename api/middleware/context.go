package middleware

import "context"

type contextKey string

const (
	ctxPhone contextKey = "actor_phone"
	ctxRole  contextKey = "actor_role"
)

// PhoneFromContext returns the authenticated actor's phone number.
func PhoneFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPhone).(string); ok {
		return v
	}
	return ""
}

// RoleFromContext returns the authenticated actor's role.
func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the authenticated identity into the context. Exported for
// handler tests.
func WithActor(ctx context.Context, phone, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxPhone, phone)
	return context.WithValue(ctx, ctxRole, role)
}
