package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateEmailRequest is the request body for changing the account email
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// VerifyTopupRequest is the request body for verifying a payment
// reference
type VerifyTopupRequest struct {
	Reference string `json:"reference"`
}

// WriteSessionRequest is the request body for writing the credential
// pair into the browser session
type WriteSessionRequest struct {
	Token string       `json:"token"`
	User  *SessionUser `json:"user"`
}

// SessionUser is the user snapshot accepted by the session write
// endpoint
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Wallet   struct {
		Balance int64 `json:"balance"`
	} `json:"wallet"`
}
