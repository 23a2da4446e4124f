package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TopupReceiptTTL bounds how long terminal receipts are retained.
	// Sessions take their TTL from their own expiry time instead.
	TopupReceiptTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		TopupReceiptTTL: 30 * 24 * time.Hour,
	}
}
