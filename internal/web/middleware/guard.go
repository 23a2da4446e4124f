package middleware

import (
	"net/http"
	"strings"

	"github.com/betstack/betstack/internal/web/session"
)

// RouteClass partitions the URL space for the route guard.
// Every path resolves to exactly one class.
type RouteClass int

const (
	// RouteUnclassified paths are unrestricted but never trigger a
	// login redirect
	RouteUnclassified RouteClass = iota
	// RoutePublic paths are reachable by anyone
	RoutePublic
	// RouteAuthOnly paths are the login/register screens; authenticated
	// visitors are bounced to the dashboard
	RouteAuthOnly
	// RouteProtected paths require a session token
	RouteProtected
)

func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteAuthOnly:
		return "auth-only"
	case RouteProtected:
		return "protected"
	default:
		return "unclassified"
	}
}

// RouteConfig is the route matcher configuration: exact-match public
// and auth-only paths, prefix-match protected roots, and the redirect
// targets for each direction.
type RouteConfig struct {
	Public            []string
	AuthOnly          []string
	ProtectedPrefixes []string

	LoginPath     string
	DashboardPath string
}

// DefaultRouteConfig returns the platform's route partition
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		Public:            []string{"/", "/promotions", "/support", "/terms"},
		AuthOnly:          []string{"/login", "/register", "/forgot-password"},
		ProtectedPrefixes: []string{"/dashboard"},
		LoginPath:         "/login",
		DashboardPath:     "/dashboard",
	}
}

// Classify maps a request path to its route class
func (c RouteConfig) Classify(path string) RouteClass {
	for _, p := range c.Public {
		if path == p {
			return RoutePublic
		}
	}
	for _, p := range c.AuthOnly {
		if path == p {
			return RouteAuthOnly
		}
	}
	for _, prefix := range c.ProtectedPrefixes {
		if prefixMatch(path, prefix) {
			return RouteProtected
		}
	}
	return RouteUnclassified
}

// prefixMatch matches the route root and its descendants, not
// unrelated substrings: /dashboard matches /dashboard/settings but
// never /dashboarding.
func prefixMatch(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// Guard returns middleware that classifies the requested path and
// allows or redirects based on token presence alone. Malformed cookies
// read as token-absent and never block navigation. Redirect targets
// are fixed same-origin paths; no redirect parameters are honored.
func Guard(store *session.Store, cfg RouteConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasToken := store.Get(r).Authenticated()

			switch cfg.Classify(r.URL.Path) {
			case RouteProtected:
				if !hasToken {
					http.Redirect(w, r, cfg.LoginPath, http.StatusSeeOther)
					return
				}
			case RouteAuthOnly:
				if hasToken {
					http.Redirect(w, r, cfg.DashboardPath, http.StatusSeeOther)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
