package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/betstack/betstack/internal/dependencies/clock"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated session with its user snapshot
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles account registration and session management.
// Sessions are persisted in storage so every server process sees the
// same token space; expiry is fixed at creation and only re-login
// issues a fresh token.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account and an initial session
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetRegisteredUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := model.UserID("u_" + uuid.NewString())
	now := s.clock.Now()

	user := &model.User{
		ID:        userID,
		Username:  username,
		Email:     email,
		Wallet:    model.Wallet{Balance: 0},
		CreatedAt: now,
	}

	registeredUser := &model.RegisteredUser{
		UserID:       userID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRegisteredUser(ctx, registeredUser); err != nil {
		return nil, err
	}

	return s.createSession(ctx, user)
}

// Login authenticates a registered user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	ru, err := s.storage.GetRegisteredUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ru.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUser(ctx, ru.UserID)
	if err != nil {
		return nil, err
	}

	return s.createSession(ctx, user)
}

// ValidateSession checks if a session token is valid and returns the
// session with a fresh user snapshot
func (s *Service) ValidateSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return &Session{
		Token:     session.Token,
		UserID:    session.UserID,
		User:      *user,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// InvalidateSession removes a session; unknown tokens are a no-op
func (s *Service) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.storage.DeleteSession(ctx, token)
}

// GetUser returns the current user snapshot for a session token
func (s *Service) GetUser(ctx context.Context, token string) (*model.User, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

// UpdateEmail changes a user's contact email and returns the updated
// user
func (s *Service) UpdateEmail(ctx context.Context, userID model.UserID, email string) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = email
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// createSession creates and persists a new session for a user
func (s *Service) createSession(ctx context.Context, user *model.User) (*Session, error) {
	token := generateToken()
	now := s.clock.Now()
	expires := now.Add(s.sessionDuration)

	if err := s.storage.SaveSession(ctx, &model.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: expires,
	}); err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: expires,
	}, nil
}

// generateToken generates an opaque session token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
