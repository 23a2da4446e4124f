package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/betstack/betstack/internal/dependencies/clock"
	"github.com/betstack/betstack/internal/services/auth"
	"github.com/betstack/betstack/internal/services/topup"
	"github.com/betstack/betstack/internal/services/wallet"
	"github.com/betstack/betstack/internal/storage"
	"github.com/betstack/betstack/internal/storage/memory"
	redisstorage "github.com/betstack/betstack/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService   *auth.Service
	WalletService *wallet.Service
	TopupService  *topup.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Gateway is the payment verification backend (required)
	Gateway topup.Gateway
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.Gateway == nil {
		return nil, errors.New("Gateway is required")
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, cfg.Gateway, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, gateway topup.Gateway, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(store, clk, authCfg)
	walletService := wallet.New(store, logger)
	topupService := topup.New(store, walletService, gateway, clk, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		AuthService:   authService,
		WalletService: walletService,
		TopupService:  topupService,
	}
}
