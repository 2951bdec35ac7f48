package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx/reply"
	"money_saver/pkg/httpx/req"
	"money_saver/pkg/lox"
	"money_saver/pkg/rest"
)

const maxDealIDLen = 128

type dealService interface {
	List(ctx context.Context, filter deal.Filter) ([]entity.Deal, error)
	Deal(ctx context.Context, id string) (entity.Deal, error)
	History(ctx context.Context, id string) ([]entity.PriceHistoryEntry, error)
	Analysis(ctx context.Context, id string) (entity.DealReport, error)
	AnalyzeWith(ctx context.Context, id string, history []entity.PriceHistoryEntry) (entity.DealReport, error)
	Overview(ctx context.Context, filter deal.Filter) (entity.Overview, error)
	Facets(ctx context.Context) (entity.Facets, error)
}

type DealServer struct {
	dealService dealService
}

func NewDealServer(dealService dealService) DealServer {
	return DealServer{
		dealService: dealService,
	}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := newDomainFilter(r.URL.Query())
	if err != nil {
		return fmt.Errorf("newDomainFilter: %w", err)
	}

	deals, err := s.dealService.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("dealService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.DealList{
		Deals: lox.Map(deals, newRESTDeal),
		Count: len(deals),
	})

	return nil
}

func (s DealServer) getV1DealsFacets(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	facets, err := s.dealService.Facets(ctx)
	if err != nil {
		return fmt.Errorf("dealService.Facets: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTFacets(facets))

	return nil
}

func (s DealServer) getV1DealsOverview(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	filter, err := newDomainFilter(r.URL.Query())
	if err != nil {
		return fmt.Errorf("newDomainFilter: %w", err)
	}

	overview, err := s.dealService.Overview(ctx, filter)
	if err != nil {
		return fmt.Errorf("dealService.Overview: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTOverview(overview))

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealID(r)
	if err != nil {
		return err
	}

	d, err := s.dealService.Deal(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Deal: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(d))

	return nil
}

func (s DealServer) getV1DealHistory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealID(r)
	if err != nil {
		return err
	}

	history, err := s.dealService.History(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.History: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PriceHistory{History: newRESTHistory(history)})

	return nil
}

func (s DealServer) getV1DealAnalysis(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealID(r)
	if err != nil {
		return err
	}

	report, err := s.dealService.Analysis(ctx, id)
	if err != nil {
		return fmt.Errorf("dealService.Analysis: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAnalysis(report))

	return nil
}

func (s DealServer) postV1DealAnalysis(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealID(r)
	if err != nil {
		return err
	}

	var request rest.AnalyzeRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	history, err := newDomainHistory(request.History)
	if err != nil {
		return fmt.Errorf("newDomainHistory: %w", err)
	}

	report, err := s.dealService.AnalyzeWith(ctx, id, history)
	if err != nil {
		return fmt.Errorf("dealService.AnalyzeWith: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAnalysis(report))

	return nil
}

func dealID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	if id == "" || utf8.RuneCountInString(id) > maxDealIDLen {
		return "", failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid deal id %q", id),
			failure.WithCode(errcodes.InvalidDealID),
			failure.WithDescription("Invalid deal id"),
		)
	}

	return id, nil
}
