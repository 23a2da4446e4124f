package response

import (
	"time"

	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/auth"
)

// Wallet is the API representation of a wallet
type Wallet struct {
	Balance int64 `json:"balance"`
}

// User is the API representation of a user
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Wallet    Wallet    `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel creates a User from a model user
func UserFromModel(u *model.User) User {
	return User{
		ID:        string(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Wallet:    Wallet{Balance: u.Wallet.Balance},
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      UserFromModel(&s.User),
	}
}

// SessionResponse is the response for reading the current session.
// Token and user are null when no session is present; the read itself
// always succeeds.
type SessionResponse struct {
	Authenticated bool    `json:"authenticated"`
	Token         *string `json:"token"`
	User          *User   `json:"user"`
}

// SessionWriteResponse reports the outcome of writing the credential
// pair; Error is set only on a failed write
type SessionWriteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TopupResponse is the response for a top-up verification
type TopupResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// TopupResponseFromReceipt creates a TopupResponse from a receipt
func TopupResponseFromReceipt(r *model.TopupReceipt) TopupResponse {
	return TopupResponse{
		Reference: r.Reference,
		Status:    string(r.Status),
		Message:   r.Message,
	}
}
