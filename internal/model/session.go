package model

import "time"

// Session is the server-side record behind a session token.
// The expiry is fixed at creation; re-login is the only refresh.
type Session struct {
	Token     string
	UserID    UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
