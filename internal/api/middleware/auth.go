package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	sessionIDKey contextKey = "sessionID"
)

// SessionMiddleware resolves the session cookie into an identity and
// attaches both to the request context. Requests without a session
// pass through; role gates decide what they may reach.
func SessionMiddleware(store providers.SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, cookie.Value)
			identity, err := store.Get(ctx, cookie.Value)
			if err == nil && identity != nil {
				ctx = context.WithValue(ctx, identityKey, identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity, or nil
func IdentityFromContext(ctx context.Context) *entities.Identity {
	identity, _ := ctx.Value(identityKey).(*entities.Identity)
	return identity
}

// SessionIDFromContext returns the session id from the cookie, or ""
func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}

// RequireRole gates a handler to signed-in users holding one of the
// given roles. No session is a hard 401; a role mismatch is a hard
// 403. Nothing is rendered for the wrong role.
func RequireRole(roles ...entities.Role) func(http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[entities.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				writeAuthError(w, http.StatusUnauthorized, "sign in required")
				return
			}
			if _, ok := allowed[identity.Role]; !ok {
				writeAuthError(w, http.StatusForbidden, "role not allowed")
				return
			}
			next(w, r)
		}
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
