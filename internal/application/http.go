package application

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"money_saver/internal/config"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/metrics"
	"money_saver/internal/server"
	"money_saver/pkg/logx"
	"money_saver/pkg/middlewarex"
)

func newHTTPServer(cfg config.Config, dealService *deal.Service) *http.Server {
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		middlewarex.RouteMetrics(metrics.HTTPRequests),
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	var admin *server.AdminServer
	if cfg.Admin.Enabled() {
		admin = server.NewAdminServer(dealService, cfg.Admin.JWTSecret)
	}

	server.NewServer(server.NewDealServer(dealService), admin).RegisterRoutes(router)

	return &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}
