// Package session is the credential store: the durable, server-visible
// record of a visitor's session token and denormalized user snapshot.
// It owns the cookie pair that the route guard and the bootstrap
// endpoint read on every request.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/betstack/betstack/internal/model"
)

// Cookie names. Both entries live for the session lifetime and are
// written/cleared together, but each stands on its own: losing one
// simply downgrades the visitor to unauthenticated.
const (
	TokenCookieName = "token"
	UserCookieName  = "user"
)

// TTL is the fixed lifetime of both entries. Only re-login refreshes it.
const TTL = 7 * 24 * time.Hour

// Credentials is what the store holds for a request. Either field may
// be absent; absence is a valid state, not an error.
type Credentials struct {
	Token string
	User  *model.User
}

// Authenticated reports whether a session token is present. When the
// token is absent the user snapshot is treated as absent too, no
// matter what a stale cookie says.
func (c Credentials) Authenticated() bool {
	return c.Token != ""
}

// Config holds credential store settings
type Config struct {
	// Secure marks the cookies Secure; enable in production
	Secure bool
}

// Store reads and writes the credential cookie pair
type Store struct {
	secure bool
}

// NewStore creates a credential store
func NewStore(cfg Config) *Store {
	return &Store{secure: cfg.Secure}
}

// Set writes the token and user snapshot as two independent cookies.
// The token is always written; if the snapshot cannot be serialized an
// error is returned and the user cookie is skipped, leaving the caller
// in a partially-written state that reads back as token-only.
func (s *Store) Set(w http.ResponseWriter, token string, user *model.User) error {
	http.SetCookie(w, s.cookie(TokenCookieName, token, int(TTL.Seconds())))

	if user == nil {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user snapshot: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	http.SetCookie(w, s.cookie(UserCookieName, encoded, int(TTL.Seconds())))
	return nil
}

// Get returns the credentials for the request. Missing or malformed
// cookies never produce an error; they read as absent.
func (s *Store) Get(r *http.Request) Credentials {
	var creds Credentials

	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		creds.Token = cookie.Value
	}

	// No token means unauthenticated regardless of the user cookie
	if creds.Token == "" {
		return creds
	}

	cookie, err := r.Cookie(UserCookieName)
	if err != nil || cookie.Value == "" {
		return creds
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return creds
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return creds
	}

	creds.User = &user
	return creds
}

// Clear removes both entries. Clearing an empty store is a no-op.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.expiredCookie(TokenCookieName))
	http.SetCookie(w, s.expiredCookie(UserCookieName))
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Store) expiredCookie(name string) *http.Cookie {
	c := s.cookie(name, "", -1)
	c.Expires = time.Unix(0, 0)
	return c
}
