package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clipforge/render-broker/pkg/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// publicPaths are reachable without a credential: provider callbacks carry
// no bearer token and health checks come from the load balancer. The
// credits endpoint authenticates with a service token checked in its
// handler instead.
var publicPaths = map[string]bool{
	"/webhooks/render": true,
	"/credits":         true,
	"/healthz":         true,
}

// Authenticate resolves the bearer credential on every request and stores
// the resulting identity in the request context.
func Authenticate(resolver auth.Resolver, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			bearer := extractBearer(r)
			identity, err := resolver.Resolve(r.Context(), bearer)
			if err != nil {
				if !errors.Is(err, auth.ErrUnauthenticated) {
					logger.Error("credential resolution failed", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.Error(w, "Unauthenticated", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// IdentityFromContext returns the authenticated caller, or nil on paths the
// auth middleware skips.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityKey).(*auth.Identity)
	return identity
}

// WithIdentity returns a context carrying the given identity. Used by tests
// to call handlers directly.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return r.Header.Get("x-api-key")
}
