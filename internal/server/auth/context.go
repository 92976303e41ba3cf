package auth

import "context"

type ctxKey string

const principalIDKey ctxKey = "principalID"

func WithPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, principalIDKey, principalID)
}

// PrincipalFromContext returns the id stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalIDKey).(string)
	return id, ok && id != ""
}
