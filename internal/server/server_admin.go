package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"money_saver/pkg/contextx"
	"money_saver/pkg/httpx/reply"
	"money_saver/pkg/logx"
	"money_saver/pkg/middlewarex"
	"money_saver/pkg/rest"
)

type feedLoader interface {
	Load(ctx context.Context) (int, error)
	LoadedAt() time.Time
}

type AdminServer struct {
	feedLoader feedLoader
	secret     []byte
}

func NewAdminServer(feedLoader feedLoader, jwtSecret string) *AdminServer {
	return &AdminServer{
		feedLoader: feedLoader,
		secret:     []byte(jwtSecret),
	}
}

func (s *AdminServer) auth(next http.Handler) http.Handler {
	return middlewarex.BearerAuth(s.secret)(next)
}

func (s *AdminServer) postV1AdminFeedReload(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	count, err := s.feedLoader.Load(ctx)
	if err != nil {
		return fmt.Errorf("feedLoader.Load: %w", err)
	}

	userID, _ := contextx.UserIDFromContext(ctx)
	logger(ctx).Info("feed reloaded by admin",
		slog.String(logx.FieldUserID, userID.String()),
		slog.Int(logx.FieldCount, count),
	)

	reply.JSON(ctx, w, http.StatusOK, rest.FeedReload{
		Count:    count,
		LoadedAt: s.feedLoader.LoadedAt(),
	})

	return nil
}
