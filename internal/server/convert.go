package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/domain/service/pricehistory"
	"money_saver/internal/domain/value"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/lox"
	"money_saver/pkg/rest"
)

func newRESTDeal(d entity.Deal) rest.Deal {
	return rest.Deal{
		ID:              d.ID,
		StoreName:       d.StoreName,
		ProductName:     d.ProductName,
		Description:     d.Description,
		Condition:       d.Condition,
		ValidPeriod:     d.ValidPeriod,
		Category:        d.Category.String(),
		OriginalPrice:   d.OriginalPrice,
		DiscountPrice:   d.DiscountPrice,
		CouponCode:      d.CouponCode,
		Savings:         d.Savings(),
		DiscountPercent: d.DiscountPercent(),
		HasHistory:      d.HasHistory(),
	}
}

func newRESTHistory(history []entity.PriceHistoryEntry) []rest.PriceHistoryEntry {
	return lox.Map(history, func(h entity.PriceHistoryEntry) rest.PriceHistoryEntry {
		return rest.PriceHistoryEntry{
			Date:          h.Date.String(),
			Price:         h.Price,
			DiscountPrice: h.DiscountPrice,
		}
	})
}

func newRESTAnalysis(report entity.DealReport) rest.DealAnalysis {
	a := report.Analysis

	return rest.DealAnalysis{
		Deal:        newRESTDeal(report.Deal),
		History:     newRESTHistory(report.History),
		Synthesized: report.Synthesized,
		Analysis: rest.PriceAnalysis{
			IsHistoricalLow:  a.IsHistoricalLow,
			LowestPrice:      a.LowestPrice,
			LowestPriceDate:  a.LowestPriceDate.String(),
			AveragePrice:     a.AveragePrice,
			CurrentVsAverage: a.CurrentVsAverage,
			Trend:            a.Trend.String(),
			Recommendation:   a.Recommendation,
			SavingsPotential: a.SavingsPotential,
			Verdict:          a.Verdict.String(),
		},
		Outlook: rest.SavingsOutlook{
			MaxSavings:    report.Outlook.MaxSavings,
			AvgSavings:    report.Outlook.AvgSavings,
			BestDayOfWeek: report.Outlook.BestDayOfWeek,
		},
	}
}

func newRESTOverview(o entity.Overview) rest.Overview {
	return rest.Overview{
		TotalSavings: o.TotalSavings,
		DealCount:    o.DealCount,
		Categories: lox.Map(o.Categories, func(c entity.CategoryCount) rest.CategoryCount {
			return rest.CategoryCount{Category: c.Category.String(), Count: c.Count}
		}),
		TopDeals: lox.Map(o.TopDeals, newRESTDeal),
	}
}

func newRESTFacets(f entity.Facets) rest.Facets {
	return rest.Facets{
		Categories:         lox.Map(f.Categories, value.Category.String),
		Stores:             f.Stores,
		DiscountThresholds: f.DiscountThresholds,
	}
}

// newDomainFilter reads the list filter from query parameters. Empty and
// "All" values of category and store match everything.
func newDomainFilter(q url.Values) (deal.Filter, error) {
	filter := deal.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Store:    strings.TrimSpace(q.Get("store")),
		Query:    q.Get("q"),
	}

	if filter.Category != "" && filter.Category != deal.AllOption {
		if _, err := value.ParseCategory(filter.Category); err != nil {
			return deal.Filter{}, failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("value.ParseCategory: %w", err),
				failure.WithCode(errcodes.InvalidCategory),
				failure.WithDescription("Unknown category"),
			)
		}
	}

	if raw := q.Get("minDiscount"); raw != "" {
		minDiscount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || minDiscount < 0 || minDiscount > 100 {
			return deal.Filter{}, failure.NewInvalidArgumentError(
				fmt.Sprintf("invalid minDiscount %q", raw),
				failure.WithCode(errcodes.InvalidMinDiscount),
				failure.WithDescription("minDiscount must be an integer between 0 and 100"),
			)
		}

		filter.MinDiscount = minDiscount
	}

	return filter, nil
}

func newDomainHistory(history []rest.PriceHistoryEntry) ([]entity.PriceHistoryEntry, error) {
	result, err := lox.MapErr(history, func(h rest.PriceHistoryEntry) (entity.PriceHistoryEntry, error) {
		date, err := value.ParseDate(h.Date)
		if err != nil {
			return entity.PriceHistoryEntry{}, fmt.Errorf("value.ParseDate: %w", err)
		}

		return entity.PriceHistoryEntry{
			Date:          date,
			Price:         h.Price,
			DiscountPrice: h.DiscountPrice,
		}, nil
	})
	if err != nil {
		description := "History dates must be YYYY-MM-DD"

		var indexErr *lox.IndexError
		if errors.As(err, &indexErr) {
			description = fmt.Sprintf("history[%d]: date must be YYYY-MM-DD", indexErr.Index)
		}

		return nil, failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(errcodes.InvalidHistory),
			failure.WithDescription(description),
		)
	}

	if err = pricehistory.Validate(result); err != nil {
		return nil, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("pricehistory.Validate: %w", err),
			failure.WithCode(errcodes.InvalidHistory),
			failure.WithDescription(err.Error()),
		)
	}

	return result, nil
}
