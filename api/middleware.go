package api

import (
	"context"
	"net/http"
	"strings"

	"teamcoin/models"
	"teamcoin/service"
)

type contextKey string

const userContextKey contextKey = "user"

// userFrom returns the authenticated user stored by the auth middleware.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

// authenticate resolves the bearer token and stores the user in the request
// context. Requests without a valid token are rejected.
func authenticate(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireManager gates admin routes; it must run after authenticate.
func requireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if user == nil {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !user.IsManager() {
			respondError(w, http.StatusForbidden, "manager role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
