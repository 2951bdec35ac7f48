package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"money_saver/pkg/middlewarex"
)

func TestRouteMetrics(t *testing.T) {
	rq := require.New(t)

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "test_request_duration_seconds",
	}, []string{"method", "route", "status"})

	router := chi.NewRouter()
	router.Use(middlewarex.RouteMetrics(histogram))
	router.Get("/v1/deals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Get("/v1/deals", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/v1/deals/d-1", "/v1/deals/d-2", "/v1/deals"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(histogram)

	families, err := registry.Gather()
	rq.NoError(err)
	rq.Len(families, 1)

	observed := map[string]uint64{}

	for _, m := range families[0].GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}

		observed[labels["route"]+" "+labels["status"]] = m.GetHistogram().GetSampleCount()
	}

	rq.Equal(map[string]uint64{
		"/v1/deals/{id} 404": 2,
		"/v1/deals 200":      1,
	}, observed)
}
