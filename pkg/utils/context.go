package utils

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated caller. It travels as an explicit argument
// into every service operation; the request context only carries it between
// middleware and handler.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}

type contextKey string

const identityKey contextKey = "identity"

func SetIdentityContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
