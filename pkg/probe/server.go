package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"money_saver/pkg/contextx"
	"money_saver/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check reports whether a dependency is ready to serve traffic.
type Check func(ctx context.Context) error

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type state struct {
	Options
	Checks map[string]string `json:"checks,omitempty"`
}

type Server struct {
	listenAddress string
	options       Options
	checks        map[string]Check
}

func NewServer(listenAddress string, options Options) *Server {
	return &Server{
		listenAddress: listenAddress,
		options:       options,
		checks:        make(map[string]Check),
	}
}

// WithCheck registers a named readiness check; /ready fails while any check fails.
func (s *Server) WithCheck(name string, check Check) *Server {
	s.checks[name] = check

	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s *Server) handlerHealthz(w http.ResponseWriter, r *http.Request) {
	s.write(r.Context(), w, http.StatusOK, state{Options: s.options})
}

func (s *Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := http.StatusOK
	resp := state{Options: s.options}

	for name, check := range s.checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(s.checks))
		}

		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			resp.Checks[name] = err.Error()

			logger(ctx).Warn("readiness check failed", slog.String("check", name), logx.Error(err))

			continue
		}

		resp.Checks[name] = "ok"
	}

	s.write(ctx, w, status, resp)
}

func (s *Server) write(ctx context.Context, w http.ResponseWriter, status int, body state) {
	b, err := json.Marshal(body)
	if err != nil {
		logger(ctx).Error("json.Marshal", logx.Error(err))
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b) //nolint:errcheck
}
