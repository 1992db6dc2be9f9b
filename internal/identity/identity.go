package identity

import (
	"context"
)

// Kind classifies the caller of a request.
type Kind int

const (
	// Anonymous carries neither a session token nor a guest cookie.
	Anonymous Kind = iota
	// Guest is identified only by a locally generated guest cookie; its
	// records live in the browser's local store until synced.
	Guest
	// Account holds a verified session issued by the auth provider.
	Account
)

// Identity is the resolved caller of a single request. Resolution happens
// per request with no caching: session and cookie state can change between
// requests.
type Identity struct {
	Kind   Kind
	UserID string
}

func (i Identity) IsAccount() bool { return i.Kind == Account }

type identityKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity resolved by the middleware. The zero
// Identity (Anonymous) is returned when none was attached.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
