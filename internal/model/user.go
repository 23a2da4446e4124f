package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// Wallet holds a user's spendable balance in minor currency units (cents)
type Wallet struct {
	Balance int64 `json:"balance"`
}

// User is the denormalized account snapshot used for rendering.
// The same shape is serialized into the `user` cookie and API responses,
// so the JSON field names are part of the external contract.
type User struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Wallet    Wallet    `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisteredUser holds authentication data for an account
// Stored separately so the password hash never travels with the snapshot
type RegisteredUser struct {
	UserID       UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
