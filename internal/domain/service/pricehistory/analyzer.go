package pricehistory

import (
	"time"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

const (
	trendWindow = 4

	// Пороги в процентах.
	trendUpPercent   = 105
	trendDownPercent = 95
	goodTimePercent  = -5
	waitPercent      = 5
)

// Analyzer derives a PriceAnalysis from a deal and its price series. It never
// fails: an empty series yields the no-data analysis.
type Analyzer struct {
	now func() time.Time
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

func (a *Analyzer) Analyze(deal entity.Deal, history []entity.PriceHistoryEntry) entity.PriceAnalysis {
	if len(history) == 0 {
		return entity.PriceAnalysis{
			IsHistoricalLow:  false,
			LowestPrice:      deal.DiscountPrice,
			LowestPriceDate:  value.DateOf(a.now()),
			AveragePrice:     deal.DiscountPrice,
			CurrentVsAverage: 0,
			Trend:            value.TrendStable,
			Recommendation:   noDataRecommendation,
			SavingsPotential: 0,
			Verdict:          value.VerdictNoData,
		}
	}

	lowest := history[0]
	var sum int64

	for _, h := range history {
		if h.DiscountPrice < lowest.DiscountPrice {
			lowest = h
		}

		sum += h.DiscountPrice
	}

	current := deal.DiscountPrice
	average := roundHalfUp(float64(sum) / float64(len(history)))

	analysis := entity.PriceAnalysis{
		IsHistoricalLow:  current == lowest.DiscountPrice,
		LowestPrice:      lowest.DiscountPrice,
		LowestPriceDate:  lowest.Date,
		AveragePrice:     average,
		CurrentVsAverage: percentDeviation(current, average),
		Trend:            trend(history),
		SavingsPotential: max(current-lowest.DiscountPrice, 0),
	}

	analysis.Verdict = verdict(analysis)
	analysis.Recommendation = recommend(deal, analysis)

	return analysis
}

func verdict(analysis entity.PriceAnalysis) value.Verdict {
	switch {
	case analysis.IsHistoricalLow:
		return value.VerdictHistoricalLow
	case analysis.CurrentVsAverage <= goodTimePercent:
		return value.VerdictGoodTime
	case analysis.CurrentVsAverage >= waitPercent:
		return value.VerdictWait
	default:
		return value.VerdictNormal
	}
}

// percentDeviation is round((current-average)/average*100).
func percentDeviation(current, average int64) int64 {
	if average <= 0 {
		return 0
	}

	return roundHalfUp(float64(current-average) / float64(average) * 100)
}

// trend compares the mean of the last four samples with the mean of the rest.
// Means are compared by cross multiplication to keep the 5% bounds exact.
func trend(history []entity.PriceHistoryEntry) value.Trend {
	split := max(len(history)-trendWindow, 0)
	older, recent := history[:split], history[split:]

	if len(older) == 0 {
		return value.TrendStable
	}

	recentSum, olderSum := sumDiscount(recent), sumDiscount(older)
	lhs := 100 * recentSum * int64(len(older))
	olderScaled := olderSum * int64(len(recent))

	switch {
	case lhs > trendUpPercent*olderScaled:
		return value.TrendIncreasing
	case lhs < trendDownPercent*olderScaled:
		return value.TrendDecreasing
	default:
		return value.TrendStable
	}
}

func sumDiscount(history []entity.PriceHistoryEntry) int64 {
	var sum int64
	for _, h := range history {
		sum += h.DiscountPrice
	}

	return sum
}
