package pricehistory

import (
	"errors"
	"fmt"

	"money_saver/internal/domain/entity"
)

var (
	ErrUnorderedHistory   = errors.New("history dates must be strictly ascending")
	ErrNonPositivePrice   = errors.New("history prices must be positive")
	ErrDiscountAbovePrice = errors.New("history discount price must not exceed the price")
	ErrStaleHistory       = errors.New("last history discount price must equal the current discount price")
)

// Validate checks the invariants a supplied series must hold on its own. An
// empty series is valid.
func Validate(history []entity.PriceHistoryEntry) error {
	for i, h := range history {
		if h.DiscountPrice <= 0 || h.Price <= 0 {
			return fmt.Errorf("entry %d: %w", i, ErrNonPositivePrice)
		}

		if h.DiscountPrice > h.Price {
			return fmt.Errorf("entry %d: %w", i, ErrDiscountAbovePrice)
		}

		if i > 0 && !history[i-1].Date.Before(h.Date.Time) {
			return fmt.Errorf("entry %d (%s): %w", i, h.Date, ErrUnorderedHistory)
		}
	}

	return nil
}

// ValidateFor additionally requires a non-empty series to end at the deal's
// current discount price.
func ValidateFor(deal entity.Deal, history []entity.PriceHistoryEntry) error {
	if err := Validate(history); err != nil {
		return err
	}

	if len(history) == 0 {
		return nil
	}

	if last := history[len(history)-1]; last.DiscountPrice != deal.DiscountPrice {
		return fmt.Errorf("entry %d: %d != %d: %w", len(history)-1, last.DiscountPrice, deal.DiscountPrice, ErrStaleHistory)
	}

	return nil
}
