package httpx_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/pkg/httpx"
)

func TestAuthBearerRoundTripper(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		token      httpx.StaticToken
		statusCode int
		wantErr    error
	}{
		{
			name:       "Token accepted",
			token:      "feed-token",
			statusCode: http.StatusOK,
		},
		{
			name:       "Token rejected",
			token:      "stale-token",
			statusCode: http.StatusUnauthorized,
		},
		{
			name:    "Empty token",
			token:   "",
			wantErr: httpx.ErrEmptyToken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var calls int

			httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++

				if r.Header.Get("Authorization") != "Bearer feed-token" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}

				w.WriteHeader(http.StatusOK)
			}))
			defer httpServer.Close()

			client := &http.Client{
				Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, tc.token),
			}

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, httpServer.URL, http.NoBody)
			rq.NoError(err)

			resp, err := client.Do(req)
			if tc.wantErr != nil {
				rq.ErrorIs(err, tc.wantErr)
				rq.Zero(calls)

				return
			}

			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Empty(req.Header.Get("Authorization"), "caller's request is left untouched")

			if tc.statusCode == http.StatusUnauthorized {
				// 401 triggers one re-authentication and a retry.
				rq.Equal(2, calls)
			}
		})
	}
}

func TestAuthBearerRoundTripper_ReplaysBody(t *testing.T) {
	rq := require.New(t)

	var bodies []string

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))

		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer httpServer.Close()

	client := &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken("stale-token")),
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, httpServer.URL, strings.NewReader(`{"since":"2026-10-01"}`))
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
	rq.Equal([]string{`{"since":"2026-10-01"}`, `{"since":"2026-10-01"}`}, bodies)
}
