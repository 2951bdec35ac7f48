package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"money_saver/internal/domain"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Get("/facets", handler(s.getV1DealsFacets))
				r.Get("/overview", handler(s.getV1DealsOverview))
				r.Get("/{id}", handler(s.getV1Deal))
				r.Get("/{id}/history", handler(s.getV1DealHistory))
				r.Get("/{id}/analysis", handler(s.getV1DealAnalysis))
				r.Post("/{id}/analysis", handler(s.postV1DealAnalysis))
			})

			if s.admin == nil {
				return
			}

			// admin zone
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.admin.auth)
				r.Post("/feed/reload", handler(s.admin.postV1AdminFeedReload))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(w, r, err)
		}
	}
}

// replyError answers domain errors by their code; everything else goes
// through the failure classes.
func replyError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	code, ok := domain.GetCode(err)
	if !ok || isFailure(err) {
		reply.Error(ctx, w, err)
		return
	}

	reply.CodedError(ctx, w, statusByCode(code), code, domain.Message(err), err)
}

func isFailure(err error) bool {
	return failure.IsInvalidArgumentError(err) ||
		failure.IsNotFoundError(err) ||
		failure.IsUnauthorizedError(err) ||
		failure.IsForbiddenError(err)
}

func statusByCode(code failure.ErrorCode) int {
	switch code {
	case errcodes.DealNotFound, errcodes.NotFound:
		return http.StatusNotFound
	case errcodes.InvalidDealID, errcodes.InvalidCategory, errcodes.InvalidMinDiscount,
		errcodes.InvalidHistory, errcodes.ValidationError:
		return http.StatusBadRequest
	case errcodes.FeedUnavailable:
		return http.StatusServiceUnavailable
	case errcodes.FeedMalformed:
		return http.StatusBadGateway
	case errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
