package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// Resolver decides, per request, whether the caller is an authenticated
// account, a guest, or anonymous. A valid session token always takes
// precedence over a guest cookie.
//
// The session token format is "<account uuid>.<base64url hmac-sha256>",
// signed by the auth provider with the shared secret. The provider itself
// is an external collaborator; only its cookie contract is modeled here.
type Resolver struct {
	sessionCookie string
	guestCookie   string
	secret        []byte
}

func NewResolver(sessionCookie, guestCookie, secret string) *Resolver {
	return &Resolver{
		sessionCookie: sessionCookie,
		guestCookie:   guestCookie,
		secret:        []byte(secret),
	}
}

// Resolve inspects the request's cookies and produces exactly one identity.
func (r *Resolver) Resolve(req *http.Request) Identity {
	var session, guest string
	if c, err := req.Cookie(r.sessionCookie); err == nil {
		session = c.Value
	}
	if c, err := req.Cookie(r.guestCookie); err == nil {
		guest = c.Value
	}
	return r.ResolveValues(session, guest)
}

// ResolveValues resolves from raw cookie values. Empty strings stand for
// absent cookies.
func (r *Resolver) ResolveValues(session, guest string) Identity {
	if session != "" {
		if accountID, err := r.verifyToken(session); err == nil {
			return Identity{Kind: Account, UserID: accountID}
		}
	}
	if guest != "" {
		if guestID, err := uuid.FromString(guest); err == nil {
			return Identity{Kind: Guest, UserID: guestID.String()}
		}
	}
	return Identity{Kind: Anonymous}
}

func (r *Resolver) verifyToken(token string) (string, error) {
	accountID, signature, ok := strings.Cut(token, ".")
	if !ok {
		return "", errors.New("malformed session token")
	}
	if _, err := uuid.FromString(accountID); err != nil {
		return "", errors.New("session token subject is not a uuid")
	}
	got, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return "", errors.New("malformed session token signature")
	}
	if !hmac.Equal(got, r.sign(accountID)) {
		return "", errors.New("session token signature mismatch")
	}
	return accountID, nil
}

func (r *Resolver) sign(accountID string) []byte {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(accountID))
	return mac.Sum(nil)
}

// SignToken builds a session token for the given account id. Used by the
// auth provider integration and by tests.
func SignToken(secret, accountID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(accountID))
	return accountID + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
