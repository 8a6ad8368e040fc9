package stores

import (
	"fmt"
)

// NewStore creates a new rate-limit store based on the configuration
func NewStore(config *StoreConfig) (RateLimitStore, error) {
	switch config.Type {
	case "sqlite":
		return NewSQLiteStore(config)
	case "postgres":
		return NewPostgresStore(config)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
