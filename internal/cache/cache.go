package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService is a TTL key-value cache with per-user invalidation. Keys
// written through SetForUser are tracked in a user index so InvalidateUser
// deletes exactly the keys owned by that user instead of scanning.
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetForUser(ctx context.Context, userID uint, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	InvalidateUser(ctx context.Context, userID uint) error
}

// Key builds a deterministic cache key from an operation name and its
// ordered arguments.
func Key(op string, args ...interface{}) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}
	return strings.Join(parts, ":")
}
