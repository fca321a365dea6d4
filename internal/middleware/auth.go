package middleware

import (
	"net/http"

	"github.com/ayush/storefront/backend/internal/auth"
	"github.com/ayush/storefront/backend/internal/respond"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Authenticate(token string) (string, error)
}

// RequireAuth is middleware that validates the session cookie and
// injects the user id into the request context.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil || cookie.Value == "" {
				respond.Error(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			userID, err := tokens.Authenticate(cookie.Value)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "session expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
