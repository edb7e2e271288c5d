package httpx

import (
	"context"
	"net/http"

	"github.com/shuttleworks/smashpos/pkg/slogx"
)

// SessionResolver turns a request's session cookie into an authenticated
// identity. Implementations re-read the user record rather than trusting the
// token snapshot.
type SessionResolver interface {
	ResolveSession(ctx context.Context, r *http.Request) (Identity, error)
}

// ResolverFunc adapts a function to the SessionResolver interface.
type ResolverFunc func(ctx context.Context, r *http.Request) (Identity, error)

func (f ResolverFunc) ResolveSession(ctx context.Context, r *http.Request) (Identity, error) {
	return f(ctx, r)
}

// SessionMiddleware authenticates the request via the session cookie and
// injects the resolved identity into the request context. Any resolution
// failure is a 401; callers that need finer-grained statuses (the who-am-I
// endpoint) resolve the session themselves instead of using this middleware.
func SessionMiddleware(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			id, err := resolver.ResolveSession(ctx, r)
			if err != nil {
				log.Warn("session resolution failed", "err", err)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error": "Not authenticated",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithIdentity(ctx, id)))
		})
	}
}

// RequireAdmin rejects callers whose resolved role is not admin. Must sit
// inside SessionMiddleware in the chain.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || id.Role != "admin" {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error": "Admin access required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
