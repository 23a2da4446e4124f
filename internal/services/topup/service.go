package topup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/betstack/betstack/internal/dependencies/clock"
	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/services/wallet"
	"github.com/betstack/betstack/internal/storage"
)

// Errors
var (
	ErrMissingReference   = errors.New("payment reference is required")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// GatewayResult is the payment gateway's answer for a reference
type GatewayResult struct {
	Paid    bool
	Amount  int64 // minor units
	Message string
}

// Gateway checks a payment reference with the upstream payment provider
type Gateway interface {
	VerifyPayment(ctx context.Context, reference string) (*GatewayResult, error)
}

// Service verifies gateway payment references and credits wallets.
// A receipt is kept per reference and moves pending -> success/failed at
// most once, so the wallet credit is exactly-once no matter how many
// times a client re-submits the same reference.
type Service struct {
	storage storage.Storage
	wallet  *wallet.Service
	gateway Gateway
	clock   clock.Clock
	logger  *slog.Logger

	// flight coalesces concurrent verifications of the same reference
	// so the pending -> terminal transition runs once
	flight singleflight.Group
}

// New creates a new top-up Service
func New(storage storage.Storage, wallet *wallet.Service, gateway Gateway, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		wallet:  wallet,
		gateway: gateway,
		clock:   clock,
		logger:  logger,
	}
}

// Verify resolves a payment reference for a user. Re-verifying a
// reference that already reached a terminal state returns the stored
// receipt without calling the gateway or touching the wallet.
// Concurrent calls for the same reference coalesce into one
// resolution, so the wallet credit cannot fire twice.
func (s *Service) Verify(ctx context.Context, userID model.UserID, reference string) (*model.TopupReceipt, error) {
	if reference == "" {
		return nil, ErrMissingReference
	}

	result, err, _ := s.flight.Do(reference, func() (any, error) {
		return s.resolve(ctx, userID, reference)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.TopupReceipt), nil
}

func (s *Service) resolve(ctx context.Context, userID model.UserID, reference string) (*model.TopupReceipt, error) {
	existing, err := s.storage.GetTopupReceipt(ctx, reference)
	if err != nil && !errors.Is(err, model.ErrReceiptNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status.Terminal() {
		return existing, nil
	}

	now := s.clock.Now()
	receipt := existing
	if receipt == nil {
		receipt = &model.TopupReceipt{
			Reference: reference,
			UserID:    userID,
			Status:    model.TopupPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.storage.SaveTopupReceipt(ctx, receipt); err != nil {
			return nil, err
		}
	}

	result, err := s.gateway.VerifyPayment(ctx, reference)
	if err != nil {
		// Gateway unreachable: the receipt stays pending so a retry can
		// still resolve it.
		s.logger.Warn("payment gateway verification failed",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	receipt.UpdatedAt = s.clock.Now()
	receipt.Message = result.Message

	if !result.Paid {
		receipt.Status = model.TopupFailed
		if err := s.storage.SaveTopupReceipt(ctx, receipt); err != nil {
			return nil, err
		}
		return receipt, nil
	}

	// pending -> success: the single point where the wallet is credited
	if _, err := s.wallet.Credit(ctx, userID, result.Amount); err != nil {
		return nil, err
	}

	receipt.Status = model.TopupSuccess
	receipt.Amount = result.Amount
	if err := s.storage.SaveTopupReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Info("top-up confirmed",
		slog.String("reference", reference),
		slog.String("user_id", string(userID)),
		slog.Int64("amount", result.Amount),
	)

	return receipt, nil
}
