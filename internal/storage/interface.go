package storage

import (
	"context"

	"github.com/betstack/betstack/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error

	// Registered user operations
	SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error
	GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error)
	GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error)

	// Session operations
	// Sessions carry their own expiry; implementations may additionally
	// evict expired entries, but callers must still check Expired.
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Top-up receipt operations
	SaveTopupReceipt(ctx context.Context, receipt *model.TopupReceipt) error
	GetTopupReceipt(ctx context.Context, reference string) (*model.TopupReceipt, error)
}
