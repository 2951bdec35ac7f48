package deal

import (
	"context"
	"slices"

	"github.com/samber/lo"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

const topDealsLimit = 5

func (s *Service) Overview(ctx context.Context, filter Filter) (entity.Overview, error) {
	deals, err := s.List(ctx, filter)
	if err != nil {
		return entity.Overview{}, err
	}

	counts := lo.CountValuesBy(deals, func(d entity.Deal) value.Category { return d.Category })
	order := lo.Uniq(lo.Map(deals, func(d entity.Deal, _ int) value.Category { return d.Category }))

	top := slices.Clone(deals)
	slices.SortStableFunc(top, func(a, b entity.Deal) int {
		return int(b.Savings() - a.Savings())
	})

	return entity.Overview{
		TotalSavings: lo.SumBy(deals, func(d entity.Deal) int64 { return d.Savings() }),
		DealCount:    len(deals),
		Categories: lo.Map(order, func(c value.Category, _ int) entity.CategoryCount {
			return entity.CategoryCount{Category: c, Count: counts[c]}
		}),
		TopDeals: top[:min(topDealsLimit, len(top))],
	}, nil
}

// Facets lists the filter options present in the loaded feed.
func (s *Service) Facets(context.Context) (entity.Facets, error) {
	deals, _, err := s.snapshot()
	if err != nil {
		return entity.Facets{}, err
	}

	return entity.Facets{
		Categories:         lo.Uniq(lo.Map(deals, func(d entity.Deal, _ int) value.Category { return d.Category })),
		Stores:             lo.Uniq(lo.Map(deals, func(d entity.Deal, _ int) string { return d.StoreName })),
		DiscountThresholds: DiscountThresholds(),
	}, nil
}
