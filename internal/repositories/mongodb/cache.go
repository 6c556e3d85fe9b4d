package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the Redis cache the repositories use for
// read-through caching. Satisfied by services.CacheService.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const defaultCacheTTL = 15 * time.Minute
