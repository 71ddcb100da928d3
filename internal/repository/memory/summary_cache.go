package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// SummaryCache keeps summaries in process memory. Used when Redis is not configured.
type SummaryCache struct {
	cache *cache.Cache
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	// purge expired items every 10 minutes
	return &SummaryCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SummaryCache) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := r.cache.Get(key); found {
		if s, ok := x.(string); ok {
			return s, true, nil
		}
	}
	return "", false, nil
}

func (r *SummaryCache) Set(_ context.Context, key, value string) error {
	r.cache.Set(key, value, cache.DefaultExpiration)
	return nil
}

func (r *SummaryCache) ItemCount() int {
	return r.cache.ItemCount()
}
