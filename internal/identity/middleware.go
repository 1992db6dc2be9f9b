package identity

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataPublic marks an operation as reachable without any identity.
const MetadataPublic = "public"

// Middleware resolves the caller's identity and gates access to API
// operations. Operations whose metadata carries MetadataPublic are exempt.
// Anonymous callers are rejected with 401; guests with 403, since guest
// records are not server-resident until synced. An authenticated session
// always wins over a guest cookie.
func Middleware(api huma.API, resolver *Resolver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op != nil && op.Metadata[MetadataPublic] != nil {
			next(ctx)
			return
		}

		var session, guest string
		for _, c := range huma.ReadCookies(ctx) {
			switch c.Name {
			case resolver.sessionCookie:
				session = c.Value
			case resolver.guestCookie:
				guest = c.Value
			}
		}

		id := resolver.ResolveValues(session, guest)
		switch id.Kind {
		case Anonymous:
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication required")
			return
		case Guest:
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "guest records live in local storage; sign in to use cloud endpoints")
			return
		}

		next(huma.WithValue(ctx, identityKey{}, id))
	}
}

// StaticMiddleware attaches a fixed identity to every request. Handler
// tests use it in place of Middleware.
func StaticMiddleware(id Identity) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithValue(ctx, identityKey{}, id))
	}
}
