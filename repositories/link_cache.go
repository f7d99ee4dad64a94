package repositories

import (
	"context"
	"encoding/json"
	"time"

	"free-gift-coupon/models"

	"github.com/redis/go-redis/v9"
)

const linksCacheKey = "coupon_links"

// LinkCache caches the coupon link list read on every cart check.
// A nil client turns every call into a miss.
type LinkCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLinkCache(client *redis.Client, ttl time.Duration) *LinkCache {
	return &LinkCache{client: client, ttl: ttl}
}

func (c *LinkCache) Get(ctx context.Context) ([]models.CouponFreeProductLink, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, linksCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var links []models.CouponFreeProductLink
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, false
	}
	return links, true
}

func (c *LinkCache) Set(ctx context.Context, links []models.CouponFreeProductLink) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return
	}
	c.client.Set(ctx, linksCacheKey, raw, c.ttl)
}

func (c *LinkCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, linksCacheKey)
}
