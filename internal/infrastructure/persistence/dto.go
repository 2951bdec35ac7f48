package persistence

import (
	"database/sql"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// dealSchema is a row of the deals table.
type dealSchema struct {
	ID            string         `db:"id"`
	Position      int            `db:"position"`
	StoreName     string         `db:"store_name"`
	ProductName   string         `db:"product_name"`
	Description   string         `db:"description"`
	Condition     string         `db:"condition"`
	ValidPeriod   string         `db:"valid_period"`
	Category      string         `db:"category"`
	OriginalPrice int64          `db:"original_price"`
	DiscountPrice int64          `db:"discount_price"`
	CouponCode    sql.NullString `db:"coupon_code"`
	PriceHistory  []byte         `db:"price_history"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

var dealColumns = []string{ //nolint:gochecknoglobals
	"id", "position", "store_name", "product_name", "description", "condition",
	"valid_period", "category", "original_price", "discount_price", "coupon_code",
	"price_history", "updated_at",
}

func fromDeal(d entity.Deal, position int, now time.Time) (dealSchema, error) {
	s := dealSchema{
		ID:            d.ID,
		Position:      position,
		StoreName:     d.StoreName,
		ProductName:   d.ProductName,
		Description:   d.Description,
		Condition:     d.Condition,
		ValidPeriod:   d.ValidPeriod,
		Category:      d.Category.String(),
		OriginalPrice: d.OriginalPrice,
		DiscountPrice: d.DiscountPrice,
		UpdatedAt:     now,
	}

	if d.CouponCode != nil {
		s.CouponCode = sql.NullString{String: *d.CouponCode, Valid: true}
	}

	if d.HasHistory() {
		b, err := json.Marshal(d.PriceHistory)
		if err != nil {
			return dealSchema{}, fmt.Errorf("json.Marshal: %w", err)
		}

		s.PriceHistory = b
	}

	return s, nil
}

func (s dealSchema) values() []any {
	var history any
	if s.PriceHistory != nil {
		history = string(s.PriceHistory)
	}

	return []any{
		s.ID, s.Position, s.StoreName, s.ProductName, s.Description, s.Condition,
		s.ValidPeriod, s.Category, s.OriginalPrice, s.DiscountPrice, s.CouponCode,
		history, s.UpdatedAt,
	}
}

func (s dealSchema) toDomain() (entity.Deal, error) {
	category, err := value.ParseCategory(s.Category)
	if err != nil {
		return entity.Deal{}, fmt.Errorf("value.ParseCategory: %w", err)
	}

	d := entity.Deal{
		ID:            s.ID,
		StoreName:     s.StoreName,
		ProductName:   s.ProductName,
		Description:   s.Description,
		Condition:     s.Condition,
		ValidPeriod:   s.ValidPeriod,
		Category:      category,
		OriginalPrice: s.OriginalPrice,
		DiscountPrice: s.DiscountPrice,
	}

	if s.CouponCode.Valid {
		code := s.CouponCode.String
		d.CouponCode = &code
	}

	if len(s.PriceHistory) > 0 {
		if err = json.Unmarshal(s.PriceHistory, &d.PriceHistory); err != nil {
			return entity.Deal{}, fmt.Errorf("json.Unmarshal: %w", err)
		}
	}

	return d, nil
}
