package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/betstack/betstack/internal/dependencies/clock"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Key TTLs are computed against the injected clock so they stay
// aligned with the expiry checks the services make.
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	return s.client.Del(ctx, userKey(id)).Err()
}

// Registered user operations

func (s *Storage) SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error {
	data, err := json.Marshal(ru)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredUserKey(ru.UserID), data, 0)
	pipe.Set(ctx, usernameIndexKey(ru.Username), string(ru.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error) {
	data, err := s.client.Get(ctx, registeredUserKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var ru model.RegisteredUser
	if err := json.Unmarshal(data, &ru); err != nil {
		return nil, err
	}
	return &ru, nil
}

func (s *Storage) GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error) {
	// Look up user ID from username index
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetRegisteredUser(ctx, model.UserID(userIDStr))
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// The key expires exactly when the session logically does
	ttl := session.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return s.client.Del(ctx, sessionKey(session.Token)).Err()
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Top-up receipt operations

func (s *Storage) SaveTopupReceipt(ctx context.Context, receipt *model.TopupReceipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, topupReceiptKey(receipt.Reference), data, s.cfg.TopupReceiptTTL).Err()
}

func (s *Storage) GetTopupReceipt(ctx context.Context, reference string) (*model.TopupReceipt, error) {
	data, err := s.client.Get(ctx, topupReceiptKey(reference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrReceiptNotFound
		}
		return nil, err
	}

	var receipt model.TopupReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
