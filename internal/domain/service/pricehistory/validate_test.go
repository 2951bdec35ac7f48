package pricehistory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/pricehistory"
)

func TestValidate(t *testing.T) {
	rq := require.New(t)

	rq.NoError(pricehistory.Validate(nil))
	rq.NoError(pricehistory.Validate(series(200, 120, 110, 100)))

	unordered := series(200, 120, 110, 100)
	unordered[1].Date, unordered[2].Date = unordered[2].Date, unordered[1].Date
	rq.ErrorIs(pricehistory.Validate(unordered), pricehistory.ErrUnorderedHistory)

	sameDay := series(200, 120, 110)
	sameDay[1].Date = sameDay[0].Date
	rq.ErrorIs(pricehistory.Validate(sameDay), pricehistory.ErrUnorderedHistory)

	zero := series(200, 120, 0)
	rq.ErrorIs(pricehistory.Validate(zero), pricehistory.ErrNonPositivePrice)

	rq.ErrorIs(pricehistory.Validate([]entity.PriceHistoryEntry{{Price: -1, DiscountPrice: 10}}), pricehistory.ErrNonPositivePrice)
	rq.ErrorIs(pricehistory.Validate([]entity.PriceHistoryEntry{{Price: 0, DiscountPrice: 10}}), pricehistory.ErrNonPositivePrice)

	rq.ErrorIs(pricehistory.Validate(series(110, 120, 100)), pricehistory.ErrDiscountAbovePrice)
}

func TestValidateFor(t *testing.T) {
	rq := require.New(t)

	d := entity.Deal{ID: "d-1", OriginalPrice: 200, DiscountPrice: 100}

	testCases := []struct {
		name    string
		history []entity.PriceHistoryEntry
		wantErr error
	}{
		{name: "empty", history: nil},
		{name: "ends at current price", history: series(200, 130, 120, 100)},
		{name: "stale last entry", history: series(200, 130, 120), wantErr: pricehistory.ErrStaleHistory},
		{name: "last entry above current", history: series(200, 90, 110), wantErr: pricehistory.ErrStaleHistory},
		{name: "discount above price", history: series(110, 130, 100), wantErr: pricehistory.ErrDiscountAbovePrice},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			err := pricehistory.ValidateFor(d, tc.history)
			if tc.wantErr == nil {
				rq.NoError(err)
				return
			}

			rq.ErrorIs(err, tc.wantErr)
		})
	}
}
