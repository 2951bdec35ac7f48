package middlewarex_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"money_saver/pkg/contextx"
	"money_saver/pkg/logx"
	"money_saver/pkg/middlewarex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestTraceID(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	base := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	var seen contextx.TraceID

	handler := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var err error

		seen, err = contextx.TraceIDFromContext(r.Context())
		rq.NoError(err)

		contextx.LoggerFromContextOrDefault(r.Context()).Info("deal listed")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/deals", http.NoBody).WithContext(base)
	req.Header.Set("X-Trace-Id", "trace-42")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	rq.Equal(contextx.TraceID("trace-42"), seen)
	rq.Equal("trace-42", w.Header().Get("X-Trace-Id"))

	var line map[string]any

	rq.NoError(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	rq.Equal("trace-42", line[logx.FieldTraceID])

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/deals", http.NoBody))

	rq.Len(w.Header().Get("X-Trace-Id"), 20)
	rq.Equal(contextx.TraceID(w.Header().Get("X-Trace-Id")), seen)
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	handler := middlewarex.TraceID(middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("deal index out of range")
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/deals/d-1", http.NoBody)
	req.Header.Set("X-Trace-Id", "trace-7")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	rq.Equal(http.StatusInternalServerError, w.Code)
	rq.JSONEq(`{"code":"InternalServerError","message":"internal server error","supportId":"trace-7"}`, w.Body.String())
}

func TestRequestLogging(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	handler := middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), 1024)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/feed/reload", strings.NewReader(`{"token":"abc"}`)).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any

	rq.NoError(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	rq.Equal(http.MethodPost, line[logx.FieldHTTPMethod])

	body, ok := line[logx.FieldRequestBody].(string)
	rq.True(ok)
	rq.Contains(body, "POST /v1/admin/feed/reload")
	rq.Contains(body, `"token":"[MASKED]"`)
	rq.NotContains(body, "abc.def.ghi")
}

func TestResponseLogging(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		status int
		level  string
	}{
		{name: "ok", status: http.StatusOK, level: "INFO"},
		{name: "not found", status: http.StatusNotFound, level: "WARN"},
		{name: "feed unavailable", status: http.StatusServiceUnavailable, level: "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

			handler := middlewarex.ResponseLogging(logx.NewNopSensitiveDataMasker(), 1024)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"count":0}`)) //nolint:errcheck
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/deals", http.NoBody).WithContext(ctx))

			var line map[string]any

			rq.NoError(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
			rq.Equal(tc.level, line["level"])
			rq.InDelta(float64(tc.status), line[logx.FieldResponseStatus], 0)
			rq.Equal(`{"count":0}`, line[logx.FieldResponseBody])
		})
	}
}
