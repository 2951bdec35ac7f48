package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"money_saver/internal/domain/entity"
)

const maxFeedSize = 16 << 20

var ErrUnexpectedStatus = errors.New("unexpected feed response status")

// HTTPFeed fetches deals.json over HTTP.
type HTTPFeed struct {
	url    string
	client *http.Client
}

func NewHTTPFeed(url string, client *http.Client) *HTTPFeed {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFeed{
		url:    url,
		client: client,
	}
}

func (f *HTTPFeed) Fetch(ctx context.Context) ([]entity.Deal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s: %w", resp.Status, ErrUnexpectedStatus)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return Decode(ctx, body)
}

func (f *HTTPFeed) String() string {
	return f.url
}
