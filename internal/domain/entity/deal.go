package entity

import (
	"math"

	"money_saver/internal/domain/value"
)

type Deal struct {
	ID            string              `json:"id"`
	StoreName     string              `json:"storeName"`
	ProductName   string              `json:"productName"`
	Description   string              `json:"description"`
	Condition     string              `json:"condition"`
	ValidPeriod   string              `json:"validPeriod"`
	Category      value.Category      `json:"category"`
	OriginalPrice int64               `json:"originalPrice"`
	DiscountPrice int64               `json:"discountPrice"`
	CouponCode    *string             `json:"couponCode"` // nil: купон не нужен
	PriceHistory  []PriceHistoryEntry `json:"priceHistory,omitempty"`
}

// Savings is the absolute discount.
func (d Deal) Savings() int64 {
	if d.OriginalPrice <= 0 {
		return 0
	}

	return d.OriginalPrice - d.DiscountPrice
}

// DiscountPercent is round(100 * savings / original), half up.
func (d Deal) DiscountPercent() int64 {
	if d.OriginalPrice <= 0 {
		return 0
	}

	return int64(math.Floor(float64(d.Savings())*100/float64(d.OriginalPrice) + 0.5))
}

func (d Deal) HasCoupon() bool {
	return d.CouponCode != nil && *d.CouponCode != ""
}

func (d Deal) HasHistory() bool {
	return len(d.PriceHistory) > 0
}
