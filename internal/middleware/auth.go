package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/session"
)

type contextKey string

const IdentityKey contextKey = "identity"

// IdentityResolver turns a raw Cookie header into a session identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, cookieHeader string) (session.Identity, bool)
}

// SessionAuth rejects requests without a valid session cookie before any
// handler runs.
func SessionAuth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := resolver.Resolve(r.Context(), r.Header.Get("Cookie"))
			if !ok {
				writeError(w, apperr.MapErrorToHTTP(apperr.ErrUnauthenticated))
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the session identity stored by SessionAuth.
func GetIdentity(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(session.Identity)
	if !ok || id.UserID.IsZero() {
		return session.Identity{}, false
	}
	return id, true
}

// WithIdentity is used by tests and by callers that resolve the session
// themselves.
func WithIdentity(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

func writeError(w http.ResponseWriter, httpErr *apperr.HTTPError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)
	json.NewEncoder(w).Encode(httpErr.ToErrorResponse())
}
