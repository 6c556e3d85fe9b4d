package services

import (
	"context"
	"fmt"
	"time"

	"carefund/pkg/cache"
	"carefund/pkg/logger"
)

// CacheService is the application-facing slice of Redis: read-through object
// caching, single-use tokens and rate limiting.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

type RateLimitResult struct {
	Allowed   bool  `json:"allowed"`
	Count     int64 `json:"count"`
	Remaining int64 `json:"remaining"`
}

type cacheService struct {
	redis      *cache.RedisCache
	logger     *logger.Logger
	keyPrefix  string
	defaultTTL time.Duration
}

func NewCacheService(redis *cache.RedisCache, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redis:      redis,
		logger:     log,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if err := s.redis.Get(ctx, s.buildKey(key), dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redis.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.redis.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, s.buildKey(key))
}

func (s *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if expiration == 0 {
		expiration = s.defaultTTL
	}
	return s.redis.SetNX(ctx, s.buildKey(key), value, expiration)
}

// CheckRateLimit is a fixed-window counter. The window starts on the first
// hit and resets when the key expires.
func (s *cacheService) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	fullKey := s.buildKey("rate_limit:" + key)

	count, err := s.redis.Increment(ctx, fullKey)
	if err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		s.redis.SetExpire(ctx, fullKey, window)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:   count <= limit,
		Count:     count,
		Remaining: remaining,
	}, nil
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix != "" {
		return s.keyPrefix + ":" + key
	}
	return key
}
