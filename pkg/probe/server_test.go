package probe_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"money_saver/pkg/probe"
)

func TestServer(t *testing.T) {
	rq := require.New(t)

	errNotLoaded := errors.New("feed not loaded")

	testCases := []struct {
		name       string
		endpoint   string
		check      probe.Check
		statusCode int
		body       string
	}{
		{
			name:       "Health handler",
			endpoint:   "/healthz",
			statusCode: http.StatusOK,
			body:       `{"name":"money-saver","version":"v0.0.1"}`,
		},
		{
			name:       "Health handler ignores checks",
			endpoint:   "/healthz",
			check:      func(context.Context) error { return errNotLoaded },
			statusCode: http.StatusOK,
			body:       `{"name":"money-saver","version":"v0.0.1"}`,
		},
		{
			name:       "Ready without checks",
			endpoint:   "/ready",
			statusCode: http.StatusOK,
			body:       `{"name":"money-saver","version":"v0.0.1"}`,
		},
		{
			name:       "Ready with passing check",
			endpoint:   "/ready",
			check:      func(context.Context) error { return nil },
			statusCode: http.StatusOK,
			body:       `{"name":"money-saver","version":"v0.0.1","checks":{"feed":"ok"}}`,
		},
		{
			name:       "Ready with failing check",
			endpoint:   "/ready",
			check:      func(context.Context) error { return errNotLoaded },
			statusCode: http.StatusServiceUnavailable,
			body:       `{"name":"money-saver","version":"v0.0.1","checks":{"feed":"feed not loaded"}}`,
		},
		{
			name:       "Invalid endpoint",
			endpoint:   "/invalid",
			statusCode: http.StatusNotFound,
			body:       "404 page not found\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			server := probe.NewServer(":0", probe.Options{Name: "money-saver", Version: "v0.0.1"})
			if tc.check != nil {
				server.WithCheck("feed", tc.check)
			}

			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.endpoint, http.NoBody))

			rq.Equal(tc.statusCode, rec.Code)
			rq.Equal(tc.body, rec.Body.String())
		})
	}
}

func TestServer_Run(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := probe.NewServer(":10001", probe.Options{Name: "money-saver", Version: "v0.0.2"})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	// Wait for server to start.
	time.Sleep(time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://:10001/healthz", http.NoBody)
	rq.NoError(err)

	resp, err := http.DefaultClient.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	rq.NoError(err)

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.JSONEq(`{"name":"money-saver","version":"v0.0.2"}`, string(body))

	cancel()

	rq.NoError(g.Wait())
}
