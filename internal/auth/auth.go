package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a token does not resolve to an account.
var ErrInvalidToken = errors.New("auth: invalid or expired token")

// User is the authenticated principal attached to a request. Quota is tracked
// against ID; Plan drives limit and model entitlement lookups.
type User struct {
	ID    string
	Email string
	Plan  string
}

// Authenticator resolves a bearer token to a user. Token issuance lives in a
// separate system; this side only ever validates.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

type userKey struct{}

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext extracts the authenticated user from the context.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey{}).(*User)

	return u, ok && u != nil
}
