package cache

import (
	"context"
	"time"
)

// Store holds small serialized blobs with a TTL: leaderboard pages, oracle
// tallies, the sentiment signal. A ttl <= 0 means no expiry.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// normalizeTTL maps every no-expiry ttl to the zero value both backends
// accept; redis rejects negative expirations outright.
func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	return ttl
}
