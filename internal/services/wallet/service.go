package wallet

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/storage"
)

// ErrInvalidAmount is returned for non-positive credit amounts
var ErrInvalidAmount = errors.New("credit amount must be positive")

// Service handles wallet reads and credits
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	// mu serializes credits: the balance update is a read-modify-write
	// over storage, so concurrent credits must not interleave
	mu sync.Mutex
}

// New creates a new wallet Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Balance returns the user's current balance in minor units
func (s *Service) Balance(ctx context.Context, userID model.UserID) (int64, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Wallet.Balance, nil
}

// Credit adds the amount to the user's wallet and returns the updated user
func (s *Service) Credit(ctx context.Context, userID model.UserID, amount int64) (*model.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Wallet.Balance += amount
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("wallet credited",
		slog.String("user_id", string(userID)),
		slog.Int64("amount", amount),
		slog.Int64("balance", user.Wallet.Balance),
	)

	return user, nil
}
