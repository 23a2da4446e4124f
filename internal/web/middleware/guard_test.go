package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/betstack/betstack/internal/web/session"
)

func TestClassify(t *testing.T) {
	cfg := DefaultRouteConfig()

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", RoutePublic},
		{"/promotions", RoutePublic},
		{"/login", RouteAuthOnly},
		{"/register", RouteAuthOnly},
		{"/forgot-password", RouteAuthOnly},
		{"/dashboard", RouteProtected},
		{"/dashboard/settings", RouteProtected},
		{"/dashboard/topup/callback", RouteProtected},
		// Substrings of a protected root are not protected
		{"/dashboarding", RouteUnclassified},
		{"/dashboard2", RouteUnclassified},
		// Exact matches don't extend to descendants
		{"/login/extra", RouteUnclassified},
		{"/nonsense", RouteUnclassified},
		{"", RouteUnclassified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Classify(tt.path), "path %q", tt.path)
	}
}

// guardResult runs a request through the guard and reports the outcome
func guardResult(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	store := session.NewStore(session.Config{})
	handler := Guard(store, DefaultRouteConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.TokenCookieName, Value: token})
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGuardDecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"no token, public", "/", "", http.StatusOK, ""},
		{"no token, auth-only", "/login", "", http.StatusOK, ""},
		{"no token, protected", "/dashboard", "", http.StatusSeeOther, "/login"},
		{"no token, protected descendant", "/dashboard/settings", "", http.StatusSeeOther, "/login"},
		{"no token, unclassified", "/whatever", "", http.StatusOK, ""},
		{"token, public", "/", "sess_abc", http.StatusOK, ""},
		{"token, auth-only", "/login", "sess_abc", http.StatusSeeOther, "/dashboard"},
		{"token, protected", "/dashboard", "sess_abc", http.StatusOK, ""},
		{"token, unclassified", "/whatever", "sess_abc", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := guardResult(t, tt.path, tt.token)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			}
		})
	}
}

func TestGuardIgnoresRedirectParameters(t *testing.T) {
	// An attacker-supplied redirect target must not be honored
	rr := guardResult(t, "/dashboard?next=https://evil.example", "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}

func TestGuardTreatsMalformedCookieAsAbsent(t *testing.T) {
	store := session.NewStore(session.Config{})
	handler := Guard(store, DefaultRouteConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Cookie", "token=; user=garbage")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// Empty token reads as absent: redirect, not an error
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}
