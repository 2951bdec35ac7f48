package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"money_saver/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const keyPrefix = "money-saver:"

// RedisHistoryCache shares synthesized series between instances, so every
// replica serves the same series for a deal.
type RedisHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryCache(client *redis.Client, ttl time.Duration) *RedisHistoryCache {
	return &RedisHistoryCache{
		client: client,
		ttl:    max(ttl, 0),
	}
}

func (c *RedisHistoryCache) Get(ctx context.Context, key string) ([]entity.PriceHistoryEntry, bool, error) {
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("redisClient.Get: %w", err)
	}

	var history []entity.PriceHistoryEntry
	if err = json.Unmarshal(b, &history); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return history, true, nil
}

// Add stores history with SetNX. A replica that lost the race reads back and
// returns the series the winner stored.
func (c *RedisHistoryCache) Add(
	ctx context.Context,
	key string,
	history []entity.PriceHistoryEntry,
) ([]entity.PriceHistoryEntry, error) {
	b, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	added, err := c.client.SetNX(ctx, keyPrefix+key, b, c.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redisClient.SetNX: %w", err)
	}

	if added {
		return history, nil
	}

	stored, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !ok {
		return history, nil
	}

	return stored, nil
}
