package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Top-up errors
	ErrReceiptNotFound = errors.New("top-up receipt not found")
)
