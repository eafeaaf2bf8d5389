package middleware

import (
	"context"

	"distributor-be/internal/user"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context
// by Auth.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   user.Role
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity, if the request carried a
// valid token.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
