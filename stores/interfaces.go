package stores

import (
	"time"
)

// Fixed-window quota for the chat endpoint.
const (
	RateLimitWindow      = 60 * time.Second
	RateLimitMaxRequests = 10
)

// RateLimit is one fixed-window counter row, keyed by client address,
// endpoint and window start. RequestCount only ever grows within a window;
// a new window means a new row.
type RateLimit struct {
	ID           uint      `gorm:"primarykey"`
	IPAddress    string    `gorm:"uniqueIndex:idx_rate_limits_key;not null"`
	Endpoint     string    `gorm:"uniqueIndex:idx_rate_limits_key;not null"`
	WindowStart  time.Time `gorm:"uniqueIndex:idx_rate_limits_key;not null"`
	RequestCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RateLimitResult is what a quota check hands back to the handler.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
}

// RateLimitStore interface for abstracting the counter backend
type RateLimitStore interface {
	// Allow records one request attempt for the key and reports whether it
	// fits the current window's quota. A broken backend fails open: the
	// result allows the request and the error is returned for logging only.
	Allow(clientKey, endpoint string) (RateLimitResult, error)

	// Prune deletes windows whose start is older than the cutoff.
	Prune(olderThan time.Duration) error

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string `json:"type"`       // "sqlite", "postgres"
	Connection string `json:"connection"` // file path or DSN
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
	}
}
