package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hadyba/hadyshop/pkg/redis"
)

const countTTL = 30 * time.Minute

// CountCache caches the navigation badge count per user in Redis so the
// storefront header does not hit Postgres on every page view.
type CountCache struct {
	client *redis.Client
}

// NewCountCache wraps the shared Redis client.
func NewCountCache(client *redis.Client) *CountCache {
	return &CountCache{client: client}
}

// Get returns the cached count and whether the key was present.
func (c *CountCache) Get(ctx context.Context, userID uuid.UUID) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	raw, err := c.client.Get(ctx, c.client.CartCountKey(userID.String()))
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the count with a TTL.
func (c *CountCache) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.client.CartCountKey(userID.String()), strconv.FormatInt(count, 10), countTTL)
}

// Invalidate drops the cached count after a cart mutation.
func (c *CountCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.client.CartCountKey(userID.String()))
}
