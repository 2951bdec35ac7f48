package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"money_saver/internal/domain/entity"
)

const cleanupInterval = 10 * time.Minute

// MemoryHistoryCache keeps synthesized series in process. A zero TTL keeps
// entries for the process lifetime.
type MemoryHistoryCache struct {
	items *gocache.Cache
}

func NewMemoryHistoryCache(ttl time.Duration) *MemoryHistoryCache {
	if ttl <= 0 {
		return &MemoryHistoryCache{items: gocache.New(gocache.NoExpiration, 0)}
	}

	return &MemoryHistoryCache{items: gocache.New(ttl, cleanupInterval)}
}

func (c *MemoryHistoryCache) Get(_ context.Context, key string) ([]entity.PriceHistoryEntry, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}

	history, ok := v.([]entity.PriceHistoryEntry)

	return history, ok, nil
}

// Add stores history unless key already holds a series, which is returned instead.
func (c *MemoryHistoryCache) Add(
	ctx context.Context,
	key string,
	history []entity.PriceHistoryEntry,
) ([]entity.PriceHistoryEntry, error) {
	if err := c.items.Add(key, history, gocache.DefaultExpiration); err == nil {
		return history, nil
	}

	stored, ok, _ := c.Get(ctx, key)
	if !ok {
		// Expired between Add and Get.
		c.items.SetDefault(key, history)
		return history, nil
	}

	return stored, nil
}

func (c *MemoryHistoryCache) Len() int {
	return c.items.ItemCount()
}
