package application

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"money_saver/internal/config"
	"money_saver/internal/infrastructure/feed"
)

type loaderStub struct {
	calls    atomic.Int32
	failures int32
}

func (l *loaderStub) Load(context.Context) (int, error) {
	if l.calls.Add(1) <= l.failures {
		return 0, errors.New("feed is down")
	}

	return 3, nil
}

func TestLoadFeed(t *testing.T) {
	rq := require.New(t)

	loader := &loaderStub{failures: 1}
	rq.NoError(loadFeed(context.Background(), loader, 3))
	rq.Equal(int32(2), loader.calls.Load())

	loader = &loaderStub{failures: 10}
	rq.Error(loadFeed(context.Background(), loader, 1))
	rq.Equal(int32(2), loader.calls.Load(), "one try plus one retry")
}

func TestRefreshFeed(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	loader := &loaderStub{failures: 1}
	rq.NoError(refreshFeed(ctx, loader, 20*time.Millisecond))
	rq.GreaterOrEqual(loader.calls.Load(), int32(2), "a failed reload does not stop refreshing")
}

func TestNewFeed(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	f, err := newFeed(ctx, config.Config{Feed: config.Feed{Source: config.FeedSourceFile, Path: "deals.json"}}, nil)
	rq.NoError(err)
	rq.IsType(&feed.FileFeed{}, f)

	f, err = newFeed(ctx, config.Config{Feed: config.Feed{Source: config.FeedSourceHTTP, URL: "http://feed"}}, nil)
	rq.NoError(err)
	rq.IsType(&feed.HTTPFeed{}, f)

	_, err = newFeed(ctx, config.Config{Feed: config.Feed{Source: "ftp"}}, nil)
	rq.ErrorIs(err, config.ErrInvalidValue)
}
