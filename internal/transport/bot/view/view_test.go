package view_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
	"money_saver/internal/transport/bot/view"
)

func deals(n int) []entity.Deal {
	result := make([]entity.Deal, 0, n)
	for i := range n {
		result = append(result, entity.Deal{
			ID:            fmt.Sprintf("d-%d", i),
			StoreName:     "momo",
			ProductName:   fmt.Sprintf("商品 %d", i),
			OriginalPrice: 12990,
			DiscountPrice: 9990,
		})
	}

	return result
}

func TestDealsPage(t *testing.T) {
	rq := require.New(t)

	text, page, total := view.DealsPage(deals(12), 2, "")
	rq.Equal(2, page)
	rq.Equal(3, total)
	rq.Contains(text, "(2/3)")
	rq.Contains(text, "商品 5")
	rq.NotContains(text, "商品 4")
	rq.Contains(text, "NT$9,990 <s>NT$12,990</s> -23%")

	_, page, _ = view.DealsPage(deals(12), 99, "")
	rq.Equal(3, page, "page is clamped")

	text, page, total = view.DealsPage(nil, 1, "美食")
	rq.Equal(view.DealsEmpty, text)
	rq.Equal(1, page)
	rq.Equal(1, total)
}

func TestDealsCallbackData(t *testing.T) {
	rq := require.New(t)

	page, category, ok := view.ParseDealsCallbackData(view.DealsCallbackData(3, "美食"))
	rq.True(ok)
	rq.Equal(3, page)
	rq.Equal("美食", category)

	page, category, ok = view.ParseDealsCallbackData(view.DealsCallbackData(1, ""))
	rq.True(ok)
	rq.Equal(1, page)
	rq.Empty(category)

	_, _, ok = view.ParseDealsCallbackData("noop")
	rq.False(ok)

	_, _, ok = view.ParseDealsCallbackData("deals_page:x:")
	rq.False(ok)
}

func TestStatusText(t *testing.T) {
	rq := require.New(t)

	text := view.StatusText(true, []value.Category{value.CategoryFood, value.CategoryTravel},
		time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC))
	rq.Contains(text, "執行中")
	rq.Contains(text, "美食、旅遊")
	rq.Contains(text, "2026-10-18 09:00:00")

	text = view.StatusText(false, nil, time.Time{})
	rq.Contains(text, "已停止")
	rq.Contains(text, "所有分類")
	rq.Contains(text, "尚未載入")
}
