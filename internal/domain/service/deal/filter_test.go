package deal_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/domain/value"
)

func TestServiceList(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc := newService(t, &feedStub{deals: testDeals()}, newCacheStub())
	_, err := svc.Load(ctx)
	rq.NoError(err)

	// d-1 10%, d-2 40%, d-3 40%, d-4 10%.
	testCases := []struct {
		name   string
		filter deal.Filter
		ids    []string
	}{
		{name: "Empty filter", filter: deal.Filter{}, ids: []string{"d-1", "d-2", "d-3", "d-4"}},
		{name: "All wildcards", filter: deal.Filter{Category: deal.AllOption, Store: deal.AllOption}, ids: []string{"d-1", "d-2", "d-3", "d-4"}},
		{
			name:   "Category and minimum discount",
			filter: deal.Filter{Category: value.CategoryElectronics.String(), MinDiscount: 30},
			ids:    []string{"d-3"},
		},
		{name: "Store", filter: deal.Filter{Store: "Yummy"}, ids: []string{"d-2", "d-4"}},
		{name: "Discount threshold inclusive", filter: deal.Filter{MinDiscount: 40}, ids: []string{"d-2", "d-3"}},
		{name: "Nothing above seventy", filter: deal.Filter{MinDiscount: 70}, ids: []string{}},
		{name: "Query matches product case-insensitively", filter: deal.Filter{Query: "usb-c"}, ids: []string{"d-3"}},
		{name: "Query matches store", filter: deal.Filter{Query: "XPRESS"}, ids: []string{"d-1", "d-3"}},
		{name: "Query matches description", filter: deal.Filter{Query: "買一送一"}, ids: []string{"d-4"}},
		{name: "Blank query", filter: deal.Filter{Query: "   "}, ids: []string{"d-1", "d-2", "d-3", "d-4"}},
		{name: "Query and category", filter: deal.Filter{Category: value.CategoryFood.String(), Query: "bowls"}, ids: []string{"d-2"}},
		{name: "Unknown store", filter: deal.Filter{Store: "Zed"}, ids: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			deals, err := svc.List(ctx, tc.filter)
			rq.NoError(err)
			rq.Equal(tc.ids, lo.Map(deals, func(d entity.Deal, _ int) string { return d.ID }))
		})
	}
}

func TestFilterScenario(t *testing.T) {
	rq := require.New(t)

	deals := []entity.Deal{
		{ID: "a-x-10", Category: value.CategoryFood, StoreName: "X", OriginalPrice: 100, DiscountPrice: 90},
		{ID: "a-y-40", Category: value.CategoryFood, StoreName: "Y", OriginalPrice: 100, DiscountPrice: 60},
		{ID: "b-x-40", Category: value.CategoryTravel, StoreName: "X", OriginalPrice: 100, DiscountPrice: 60},
		{ID: "b-y-10", Category: value.CategoryTravel, StoreName: "Y", OriginalPrice: 100, DiscountPrice: 90},
	}

	filter := deal.Filter{Category: value.CategoryFood.String(), MinDiscount: 30}
	matched := lo.Filter(deals, func(d entity.Deal, _ int) bool { return filter.Match(d) })
	rq.Len(matched, 1)
	rq.Equal("a-y-40", matched[0].ID)

	all := lo.Filter(deals, func(d entity.Deal, _ int) bool { return deal.Filter{Query: ""}.Match(d) })
	rq.Len(all, len(deals))
}

func TestServiceOverviewAndFacets(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc := newService(t, &feedStub{deals: testDeals()}, newCacheStub())

	_, err := svc.Facets(ctx)
	rq.Error(err)

	_, err = svc.Load(ctx)
	rq.NoError(err)

	overview, err := svc.Overview(ctx, deal.Filter{})
	rq.NoError(err)
	rq.Equal(int64(100+200+800+10), overview.TotalSavings)
	rq.Equal(4, overview.DealCount)
	rq.Equal([]entity.CategoryCount{
		{Category: value.CategoryElectronics, Count: 2},
		{Category: value.CategoryFood, Count: 2},
	}, overview.Categories)
	rq.Equal([]string{"d-3", "d-2", "d-1", "d-4"}, lo.Map(overview.TopDeals, func(d entity.Deal, _ int) string { return d.ID }))

	overview, err = svc.Overview(ctx, deal.Filter{MinDiscount: 70})
	rq.NoError(err)
	rq.Zero(overview.DealCount)
	rq.Empty(overview.TopDeals)
	rq.Empty(overview.Categories)

	facets, err := svc.Facets(ctx)
	rq.NoError(err)
	rq.Equal([]value.Category{value.CategoryElectronics, value.CategoryFood}, facets.Categories)
	rq.Equal([]string{"Xpress", "Yummy"}, facets.Stores)
	rq.Equal([]int64{0, 10, 30, 50, 70}, facets.DiscountThresholds)
}

func TestDiscountPercent(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		original, discount, percent int64
	}{
		{original: 200, discount: 100, percent: 50},
		{original: 300, discount: 199, percent: 34},
		{original: 8, discount: 7, percent: 13},
		{original: 1000, discount: 1000, percent: 0},
		{original: 0, discount: 0, percent: 0},
	}

	for _, tc := range testCases {
		d := entity.Deal{OriginalPrice: tc.original, DiscountPrice: tc.discount}
		rq.Equal(tc.percent, d.DiscountPercent(), "%d/%d", tc.discount, tc.original)
	}
}
