package services

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RatingsCache keeps product average ratings in redis so the aggregate
// query runs once per TTL instead of on every product read. A nil client
// degrades to calling the loader directly.
type RatingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingsCache(client *redis.Client) *RatingsCache {
	return &RatingsCache{client: client, ttl: 5 * time.Minute}
}

// AverageRatings returns the cached average for the product, computing
// and caching it via load on a miss.
func (rc *RatingsCache) AverageRatings(ctx context.Context, productID string, load func() float64) float64 {
	if rc == nil || rc.client == nil {
		return load()
	}

	key := "product:ratings:" + productID
	if cached, err := rc.client.Get(ctx, key).Result(); err == nil {
		if avg, perr := strconv.ParseFloat(cached, 64); perr == nil {
			return avg
		}
	}

	avg := load()
	rc.client.Set(ctx, key, strconv.FormatFloat(avg, 'f', -1, 64), rc.ttl)
	return avg
}

// Invalidate drops the cached average after a review is written.
func (rc *RatingsCache) Invalidate(ctx context.Context, productID string) {
	if rc == nil || rc.client == nil {
		return
	}
	rc.client.Del(ctx, "product:ratings:"+productID)
}
