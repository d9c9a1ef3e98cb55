package cache

import (
	"context"
	"courier-route-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisPlanCache stores serialized plan responses keyed by a request digest,
// so identical optimization requests are answered without recomputing the
// route. Entries expire on their own; there is no invalidation path.
type RedisPlanCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client, Prefix: "plan:"}
}

// NewRedisPlanCacheFromURL dials Redis from a redis:// URL.
func NewRedisPlanCacheFromURL(url string) (*RedisPlanCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("plan cache: parse redis url: %w", err)
	}
	return NewRedisPlanCache(redis.NewClient(opt)), nil
}

// Fetch a cached plan payload. A miss is (nil, false, nil), not an error.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	payload, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	return payload, true, nil
}

// Store a plan payload under key for at most ttl.
func (c *RedisPlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("put plan cache: key must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("put plan cache key=%q: ttl must be positive, got %s", key, ttl)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("put plan cache key=%q: %w", key, err)
	}

	return nil
}
