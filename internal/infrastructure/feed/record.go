package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"money_saver/internal/domain"
	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/pricehistory"
	"money_saver/internal/domain/value"
	"money_saver/internal/metrics"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/logx"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// dealRecord mirrors one element of deals.json.
type dealRecord struct {
	ID            string          `json:"id"            validate:"required"`
	StoreName     string          `json:"storeName"     validate:"required"`
	ProductName   string          `json:"productName"   validate:"required"`
	CouponCode    *string         `json:"couponCode"`
	OriginalPrice int64           `json:"originalPrice" validate:"gt=0"`
	DiscountPrice int64           `json:"discountPrice" validate:"gt=0,ltefield=OriginalPrice"`
	Condition     string          `json:"condition"`
	Category      string          `json:"category"      validate:"required"`
	Description   string          `json:"description"`
	ValidPeriod   string          `json:"validPeriod"`
	PriceHistory  []historyRecord `json:"priceHistory"  validate:"omitempty,dive"`
}

type historyRecord struct {
	Date          string `json:"date"          validate:"required,datetime=2006-01-02"`
	Price         int64  `json:"price"         validate:"gt=0"`
	DiscountPrice int64  `json:"discountPrice" validate:"gt=0"`
}

func (r dealRecord) toDomain() (entity.Deal, error) {
	category, err := value.ParseCategory(r.Category)
	if err != nil {
		return entity.Deal{}, fmt.Errorf("value.ParseCategory: %w", err)
	}

	history := make([]entity.PriceHistoryEntry, 0, len(r.PriceHistory))

	for _, h := range r.PriceHistory {
		date, err := value.ParseDate(h.Date)
		if err != nil {
			return entity.Deal{}, fmt.Errorf("value.ParseDate: %w", err)
		}

		history = append(history, entity.PriceHistoryEntry{
			Date:          date,
			Price:         h.Price,
			DiscountPrice: h.DiscountPrice,
		})
	}

	if len(history) == 0 {
		history = nil
	}

	d := entity.Deal{
		ID:            r.ID,
		StoreName:     r.StoreName,
		ProductName:   r.ProductName,
		Description:   r.Description,
		Condition:     r.Condition,
		ValidPeriod:   r.ValidPeriod,
		Category:      category,
		OriginalPrice: r.OriginalPrice,
		DiscountPrice: r.DiscountPrice,
		CouponCode:    r.CouponCode,
		PriceHistory:  history,
	}

	if err = pricehistory.ValidateFor(d, history); err != nil {
		return entity.Deal{}, fmt.Errorf("pricehistory.ValidateFor: %w", err)
	}

	return d, nil
}

// Decode parses a deals.json document. Records that fail validation are
// logged and skipped; a document that is not a JSON array is an error.
func Decode(ctx context.Context, data []byte) ([]entity.Deal, error) {
	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.WrapError(err, errcodes.FeedMalformed, "deal feed is not a JSON array")
	}

	deals := make([]entity.Deal, 0, len(raw))

	for i, item := range raw {
		d, err := decodeRecord(ctx, item)
		if err != nil {
			metrics.FeedRejected.Inc()
			logger(ctx).Warn("deal record skipped", slog.Int("index", i), logx.Error(err))

			continue
		}

		deals = append(deals, d)
	}

	return deals, nil
}

func decodeRecord(ctx context.Context, item jsoniter.RawMessage) (entity.Deal, error) {
	var record dealRecord
	if err := json.Unmarshal(item, &record); err != nil {
		return entity.Deal{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := validate.StructCtx(ctx, record); err != nil {
		return entity.Deal{}, fmt.Errorf("deal %q: validate.StructCtx: %w", record.ID, err)
	}

	d, err := record.toDomain()
	if err != nil {
		return entity.Deal{}, fmt.Errorf("deal %q: %w", record.ID, err)
	}

	return d, nil
}
