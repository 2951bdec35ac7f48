package pricehistory

import (
	"time"

	"money_saver/internal/domain/entity"
)

const unknownWeekday = "未知"

var weekdayNames = [7]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"} //nolint:gochecknoglobals

// Outlook estimates how much more could be saved by waiting and which weekday
// has historically been the cheapest.
func (a *Analyzer) Outlook(deal entity.Deal, history []entity.PriceHistoryEntry) entity.SavingsOutlook {
	if len(history) == 0 {
		return entity.SavingsOutlook{BestDayOfWeek: unknownWeekday}
	}

	lowest := history[0].DiscountPrice

	var (
		sums   [7]int64
		counts [7]int64
	)

	for _, h := range history {
		lowest = min(lowest, h.DiscountPrice)

		day := h.Date.Weekday()
		sums[day] += h.DiscountPrice
		counts[day]++
	}

	mean := float64(sumDiscount(history)) / float64(len(history))

	return entity.SavingsOutlook{
		MaxSavings:    deal.DiscountPrice - lowest,
		AvgSavings:    roundHalfUp(float64(deal.DiscountPrice) - mean),
		BestDayOfWeek: bestWeekday(sums, counts),
	}
}

// bestWeekday returns the weekday with the lowest mean price. Ties keep the
// earlier day, Sunday first.
func bestWeekday(sums, counts [7]int64) string {
	best := -1

	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] == 0 {
			continue
		}

		if best < 0 || sums[day]*counts[best] < sums[best]*counts[day] {
			best = int(day)
		}
	}

	if best < 0 {
		return unknownWeekday
	}

	return weekdayNames[best]
}
