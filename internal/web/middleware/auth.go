package middleware

import (
	"context"
	"net/http"

	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/web/session"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// GetUser retrieves the authenticated user from the request context
// Returns nil if no user is authenticated
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// Auth returns middleware that requires a valid session. The guard has
// already checked token presence; this validates the token server-side,
// so a present-but-expired token also lands on the login page.
func Auth(authService *auth.Service, store *session.Store, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromSession(r, authService, store)
			if user == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but
// doesn't require it; sets the user in context if authenticated
func OptionalAuth(authService *auth.Service, store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromSession(r, authService, store)
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromSession(r *http.Request, authService *auth.Service, store *session.Store) *model.User {
	creds := store.Get(r)
	if !creds.Authenticated() {
		return nil
	}

	user, err := authService.GetUser(r.Context(), creds.Token)
	if err != nil {
		return nil
	}

	return user
}
