package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
	"money_saver/internal/infrastructure/cache"
)

type historyCache interface {
	Get(ctx context.Context, key string) ([]entity.PriceHistoryEntry, bool, error)
	Add(ctx context.Context, key string, history []entity.PriceHistoryEntry) ([]entity.PriceHistoryEntry, error)
}

func testHistory() []entity.PriceHistoryEntry {
	return []entity.PriceHistoryEntry{
		{Date: value.NewDate(2026, time.October, 11), Price: 1000, DiscountPrice: 850},
		{Date: value.NewDate(2026, time.October, 18), Price: 1000, DiscountPrice: 800},
	}
}

func checkRoundTrip(t *testing.T, c historyCache) {
	t.Helper()

	rq := require.New(t)
	ctx := context.Background()
	key := "history:" + xid.New().String()

	history, ok, err := c.Get(ctx, key)
	rq.NoError(err)
	rq.False(ok)
	rq.Nil(history)

	stored, err := c.Add(ctx, key, testHistory())
	rq.NoError(err)
	rq.Equal(testHistory(), stored)

	history, ok, err = c.Get(ctx, key)
	rq.NoError(err)
	rq.True(ok)
	rq.Len(history, 2)
	rq.Equal("2026-10-11", history[0].Date.String())
	rq.Equal(int64(800), history[1].DiscountPrice)

	// The first series wins; a later writer gets it back.
	later := testHistory()
	later[1].DiscountPrice = 790

	stored, err = c.Add(ctx, key, later)
	rq.NoError(err)
	rq.Equal(int64(800), stored[1].DiscountPrice)

	history, ok, err = c.Get(ctx, key)
	rq.NoError(err)
	rq.True(ok)
	rq.Equal(int64(800), history[1].DiscountPrice)
}

func TestMemoryHistoryCache(t *testing.T) {
	rq := require.New(t)

	c := cache.NewMemoryHistoryCache(0)
	checkRoundTrip(t, c)
	rq.Equal(1, c.Len())
}

func TestMemoryHistoryCacheExpires(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	c := cache.NewMemoryHistoryCache(50 * time.Millisecond)
	_, err := c.Add(ctx, "k", testHistory())
	rq.NoError(err)

	_, ok, err := c.Get(ctx, "k")
	rq.NoError(err)
	rq.True(ok)

	time.Sleep(100 * time.Millisecond)

	_, ok, err = c.Get(ctx, "k")
	rq.NoError(err)
	rq.False(ok)
}

func TestRedisHistoryCache(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr}) //nolint:exhaustruct
	defer client.Close()

	checkRoundTrip(t, cache.NewRedisHistoryCache(client, time.Minute))
}
