package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingsCacheWithoutRedis(t *testing.T) {
	calls := 0
	load := func() float64 {
		calls++
		return 4.0
	}

	rc := NewRatingsCache(nil)
	assert.Equal(t, 4.0, rc.AverageRatings(context.Background(), "p1", load))
	assert.Equal(t, 4.0, rc.AverageRatings(context.Background(), "p1", load))
	// No cache backend, so the loader runs every time.
	assert.Equal(t, 2, calls)

	// Invalidate must be a no-op rather than a panic.
	rc.Invalidate(context.Background(), "p1")

	var nilCache *RatingsCache
	assert.Equal(t, 4.0, nilCache.AverageRatings(context.Background(), "p1", load))
}
