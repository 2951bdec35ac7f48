package feed_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/internal/domain"
	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
	"money_saver/internal/infrastructure/feed"
	"money_saver/pkg/contextx"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx"
)

func checkFixture(rq *require.Assertions, deals []entity.Deal) {
	rq.Len(deals, 3)

	coffee := deals[0]
	rq.Equal("1", coffee.ID)
	rq.Equal(value.CategoryFood, coffee.Category)
	rq.Nil(coffee.CouponCode)
	rq.False(coffee.HasHistory())
	rq.Equal(int64(25), coffee.DiscountPercent())

	monitor := deals[1]
	rq.Equal("PC4KSALE", *monitor.CouponCode)
	rq.Len(monitor.PriceHistory, 3)
	rq.Equal("2026-09-27", monitor.PriceHistory[0].Date.String())
	rq.Equal(int64(9990), monitor.PriceHistory[2].DiscountPrice)

	rq.Equal(value.CategoryTravel, deals[2].Category)
}

func TestDecode(t *testing.T) {
	rq := require.New(t)

	data, err := os.ReadFile(filepath.Join("testdata", "deals.json"))
	rq.NoError(err)

	var buf bytes.Buffer

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	deals, err := feed.Decode(ctx, data)
	rq.NoError(err)
	checkFixture(rq, deals)

	// Five broken records, one log line each.
	rq.Equal(5, bytes.Count(buf.Bytes(), []byte("deal record skipped")))
}

func TestDecodeMalformed(t *testing.T) {
	rq := require.New(t)

	for _, doc := range []string{`{"id":"1"}`, `not json`, ``} {
		_, err := feed.Decode(context.Background(), []byte(doc))
		rq.True(domain.HasCode(err, errcodes.FeedMalformed), doc)
	}

	deals, err := feed.Decode(context.Background(), []byte(`[]`))
	rq.NoError(err)
	rq.Empty(deals)
}

func TestDecodeHistoryMismatch(t *testing.T) {
	rq := require.New(t)

	const record = `{"id":"%s","storeName":"S","productName":"P","originalPrice":200,"discountPrice":100,` +
		`"category":"美食","priceHistory":%s}`

	testCases := []struct {
		name    string
		history string
		skipped bool
	}{
		{
			name:    "ends at current price",
			history: `[{"date":"2026-10-11","price":200,"discountPrice":130},{"date":"2026-10-18","price":200,"discountPrice":100}]`,
		},
		{
			name:    "stale last entry",
			history: `[{"date":"2026-10-11","price":200,"discountPrice":130},{"date":"2026-10-18","price":200,"discountPrice":120}]`,
			skipped: true,
		},
		{
			name:    "discount above price",
			history: `[{"date":"2026-10-11","price":120,"discountPrice":130},{"date":"2026-10-18","price":200,"discountPrice":100}]`,
			skipped: true,
		},
		{
			name:    "zero price",
			history: `[{"date":"2026-10-18","price":0,"discountPrice":100}]`,
			skipped: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

			deals, err := feed.Decode(ctx, []byte("["+fmt.Sprintf(record, "h-1", tc.history)+"]"))
			rq.NoError(err)

			if tc.skipped {
				rq.Empty(deals)
				rq.Contains(buf.String(), "deal record skipped")

				return
			}

			rq.Len(deals, 1)
			rq.Len(deals[0].PriceHistory, 2)
			rq.Equal(int64(100), deals[0].PriceHistory[1].DiscountPrice)
		})
	}
}

func TestHTTPFeed(t *testing.T) {
	rq := require.New(t)

	data, err := os.ReadFile(filepath.Join("testdata", "deals.json"))
	rq.NoError(err)

	mux := http.NewServeMux()
	mux.HandleFunc("/deals.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data) //nolint:errcheck
	})
	mux.HandleFunc("/down.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	httpServer := httptest.NewServer(mux)
	defer httpServer.Close()

	client := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, httpx.WithLogFieldMaxLen(256)),
	}

	deals, err := feed.NewHTTPFeed(httpServer.URL+"/deals.json", client).Fetch(context.Background())
	rq.NoError(err)
	checkFixture(rq, deals)

	_, err = feed.NewHTTPFeed(httpServer.URL+"/down.json", client).Fetch(context.Background())
	rq.ErrorIs(err, feed.ErrUnexpectedStatus)
	rq.ErrorContains(err, "502")

	_, err = feed.NewHTTPFeed("http://127.0.0.1:1/deals.json", nil).Fetch(context.Background())
	rq.Error(err)
}

func TestFileFeed(t *testing.T) {
	rq := require.New(t)

	deals, err := feed.NewFileFeed(filepath.Join("testdata", "deals.json")).Fetch(context.Background())
	rq.NoError(err)
	checkFixture(rq, deals)

	_, err = feed.NewFileFeed(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	rq.ErrorIs(err, os.ErrNotExist)
}
