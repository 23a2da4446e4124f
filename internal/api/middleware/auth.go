package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/betstack/betstack/internal/api/apierr"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/web/session"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			sess, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and user to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, sess)
			ctx = context.WithValue(ctx, userContextKey, &sess.User)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the session if present but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token != "" {
				if sess, err := authService.ValidateSession(r.Context(), token); err == nil {
					ctx := r.Context()
					ctx = context.WithValue(ctx, sessionContextKey, sess)
					ctx = context.WithValue(ctx, userContextKey, &sess.User)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken extracts the session token from the request: the
// Authorization header for API clients, the token cookie for the
// browser
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie(session.TokenCookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	sess, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return sess
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
