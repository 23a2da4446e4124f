package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/betstack/betstack/internal/dependencies/clock"
	"github.com/betstack/betstack/internal/dependencies/mocks"
	"github.com/betstack/betstack/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TopupReceiptTTL = time.Hour

	s.storage = NewWithClient(client, cfg, clock.New())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "user-1",
		Username:  "alice",
		Email:     "alice@example.com",
		Wallet:    model.Wallet{Balance: 1000},
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.Wallet.Balance, retrieved.Wallet.Balance)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUser() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "user-1", Username: "alice"})

	err := s.storage.DeleteUser(s.ctx, "user-1")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Registered user tests

func (s *StorageSuite) TestSaveAndGetRegisteredUser() {
	ru := &model.RegisteredUser{
		UserID:       "user-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now().UTC(),
	}

	err := s.storage.SaveRegisteredUser(s.ctx, ru)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(ru.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredUserByUsername() {
	ru := &model.RegisteredUser{
		UserID:       "user-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredUser(s.ctx, ru)

	retrieved, err := s.storage.GetRegisteredUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("user-1", string(retrieved.UserID))
}

func (s *StorageSuite) TestGetRegisteredUserByUsernameNotFound() {
	_, err := s.storage.GetRegisteredUserByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.UserID)
}

func (s *StorageSuite) TestSessionKeyHasTTL() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	_ = s.storage.SaveSession(s.ctx, session)

	ttl := s.mini.TTL(sessionKey("sess_abc"))
	s.True(ttl > 0, "session key should expire with the session")
}

func (s *StorageSuite) TestSessionTTLFollowsInjectedClock() {
	clk := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	store := NewWithClient(client, DefaultConfig(), clk)
	defer store.Close()

	session := &model.Session{
		Token:     "sess_clk",
		UserID:    "user-1",
		CreatedAt: clk.Now(),
		ExpiresAt: clk.Now().Add(90 * time.Minute),
	}
	err := store.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	// The TTL is the logical time remaining, regardless of the wall clock
	s.Equal(90*time.Minute, s.mini.TTL(sessionKey("sess_clk")))

	clk.Advance(2 * time.Hour)
	err = store.SaveSession(s.ctx, session)
	s.Require().NoError(err)
	s.False(s.mini.Exists(sessionKey("sess_clk")), "logically expired session should be removed")
}

func (s *StorageSuite) TestSaveExpiredSessionRemovesKey() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExpiresWithClock() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	_ = s.storage.SaveSession(s.ctx, session)

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := &model.Session{
		Token:     "sess_abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, "sess_abc")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess_abc")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Top-up receipt tests

func (s *StorageSuite) TestSaveAndGetTopupReceipt() {
	receipt := &model.TopupReceipt{
		Reference: "abc123",
		UserID:    "user-1",
		Amount:    2500,
		Status:    model.TopupPending,
	}

	err := s.storage.SaveTopupReceipt(s.ctx, receipt)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTopupReceipt(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(model.TopupPending, retrieved.Status)
}

func (s *StorageSuite) TestTopupReceiptHasTTL() {
	receipt := &model.TopupReceipt{Reference: "abc123", UserID: "user-1"}
	_ = s.storage.SaveTopupReceipt(s.ctx, receipt)

	ttl := s.mini.TTL(topupReceiptKey("abc123"))
	s.True(ttl > 0, "receipt should not be retained forever")
}

func (s *StorageSuite) TestGetTopupReceiptNotFound() {
	_, err := s.storage.GetTopupReceipt(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrReceiptNotFound)
}
