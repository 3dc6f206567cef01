package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"alxtravel/internal/domain"

	"github.com/redis/go-redis/v9"
)

// ListingKey is the redis key a listing is stored under.
func ListingKey(id int64) string {
	return "listing:" + strconv.FormatInt(id, 10)
}

// RedisListingCache stores listings (with their owner) as JSON. Failures are logged and
// reported as misses so the database stays the source of truth.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListingCache(client *redis.Client, ttl time.Duration) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: ttl}
}

func (c *RedisListingCache) Get(ctx context.Context, id int64) (*domain.Listing, bool) {
	raw, err := c.client.Get(ctx, ListingKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("listing cache get failed", "listing_id", id, "error", err)
		}
		return nil, false
	}

	var l domain.Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		slog.Warn("listing cache decode failed", "listing_id", id, "error", err)
		return nil, false
	}
	return &l, true
}

func (c *RedisListingCache) Set(ctx context.Context, l *domain.Listing) {
	raw, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ListingKey(l.ID), raw, c.ttl).Err(); err != nil {
		slog.Warn("listing cache set failed", "listing_id", l.ID, "error", err)
	}
}

func (c *RedisListingCache) Delete(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, ListingKey(id)).Err(); err != nil {
		slog.Warn("listing cache delete failed", "listing_id", id, "error", err)
	}
}

// NoopListingCache is used when no redis address is configured.
type NoopListingCache struct{}

func (NoopListingCache) Get(context.Context, int64) (*domain.Listing, bool) { return nil, false }
func (NoopListingCache) Set(context.Context, *domain.Listing)               {}
func (NoopListingCache) Delete(context.Context, int64)                      {}
