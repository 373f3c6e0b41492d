package cache

import (
	"context"
	"time"
)

// RateCache is a TTL key/value store for exchange rates. Values are the rate
// serialized as a decimal string. Implementations must be safe for
// concurrent use; writes are idempotent upserts.
type RateCache interface {
	// Connect verifies the backing store is reachable.
	Connect(ctx context.Context) error
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}
