package auth

import "context"

// Identity is the resolved caller identity for a single request. A nil
// *Identity means the caller presented no usable session at all.
type Identity struct {
	UID       string `json:"uid"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anonymous"`
}

type contextKey string

const identityKey contextKey = "auth.identity"

// WithIdentity attaches the caller identity to the request context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity attached by the auth middleware,
// or nil when the request carried no valid session.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}
