package pricehistory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/pricehistory"
	"money_saver/internal/domain/value"
	"money_saver/pkg/tests"
)

var testNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC) //nolint:gochecknoglobals

func fixedClock() time.Time { return testNow }

func constRandom(v float64) pricehistory.RandomFunc {
	return func() float64 { return v }
}

func TestSynthesizeShape(t *testing.T) {
	rq := require.New(t)
	deal := entity.Deal{ID: "d-1", OriginalPrice: 2000, DiscountPrice: 1490, Category: value.CategoryElectronics}

	testCases := []struct {
		name     string
		daysBack int
		length   int
	}{
		{name: "Default window", daysBack: pricehistory.DefaultDaysBack, length: 13 + 1},
		{name: "Zero days", daysBack: 0, length: 1},
		{name: "Less than a week", daysBack: 6, length: 1},
		{name: "Exactly one week", daysBack: 7, length: 2},
		{name: "Thirty days", daysBack: 30, length: 5},
		{name: "Negative days", daysBack: -14, length: 1},
	}

	rnd := tests.NewRandomizer()
	synthesizer := pricehistory.NewSynthesizer(pricehistory.RandomFunc(rnd.Float64)).WithClock(fixedClock)

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			history := synthesizer.SynthesizeDays(deal, tc.daysBack)

			rq.Len(history, tc.length)

			last := history[len(history)-1]
			rq.Equal("2026-10-18", last.Date.String())
			rq.Equal(deal.DiscountPrice, last.DiscountPrice)

			for i := 1; i < len(history); i++ {
				rq.Equal(history[i-1].Date.AddDays(7), history[i].Date)
				rq.True(history[i-1].Date.Before(history[i].Date.Time))
			}

			for _, h := range history {
				rq.Equal(deal.OriginalPrice, h.Price)
			}
		})
	}
}

func TestSynthesizeDefaultDaysBack(t *testing.T) {
	rq := require.New(t)

	synthesizer := pricehistory.NewSynthesizer(constRandom(0.5)).WithClock(fixedClock)
	rq.Equal(pricehistory.DefaultDaysBack, synthesizer.DaysBack())

	history := synthesizer.Synthesize(entity.Deal{OriginalPrice: 500, DiscountPrice: 400})
	rq.Len(history, 14)
	rq.Equal("2026-07-19", history[0].Date.String())

	// 0.5 maps to a zero variation.
	for _, h := range history {
		rq.Equal(int64(400), h.DiscountPrice)
	}

	rq.Len(synthesizer.WithDaysBack(28).Synthesize(entity.Deal{OriginalPrice: 500, DiscountPrice: 400}), 5)
}

func TestSynthesizeClamp(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		random   float64
		original int64
		discount int64
		expected int64
	}{
		{name: "Lowest draw hits floor", random: 0, original: 200, discount: 100, expected: 85},
		{name: "Floor rounds up", random: 0, original: 200, discount: 99, expected: 85},
		{name: "Highest draw capped by original", random: 0.999999, original: 105, discount: 100, expected: 105},
		{name: "Highest draw below original", random: 0.999999, original: 300, discount: 100, expected: 115},
		{name: "No discount", random: 0.9, original: 100, discount: 100, expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			synthesizer := pricehistory.NewSynthesizer(constRandom(tc.random)).WithClock(fixedClock)
			deal := entity.Deal{OriginalPrice: tc.original, DiscountPrice: tc.discount}

			history := synthesizer.SynthesizeDays(deal, 14)
			rq.Len(history, 3)
			rq.Equal(tc.expected, history[0].DiscountPrice)
			rq.Equal(tc.expected, history[1].DiscountPrice)
			rq.Equal(tc.discount, history[2].DiscountPrice)
		})
	}
}

func TestSynthesizeBoundsProperty(t *testing.T) {
	rq := require.New(t)
	rnd := tests.NewRandomizer()

	t.Logf("seed %d", rnd.Seed)

	synthesizer := pricehistory.NewSynthesizer(pricehistory.RandomFunc(rnd.Float64)).WithClock(fixedClock)

	for range 200 {
		original := 1 + rnd.Int63n(50_000)
		discount := 1 + rnd.Int63n(original)
		deal := entity.Deal{OriginalPrice: original, DiscountPrice: discount}

		history := synthesizer.SynthesizeDays(deal, int(rnd.Int63n(200)))
		rq.Equal(discount, history[len(history)-1].DiscountPrice)

		for _, h := range history {
			rq.GreaterOrEqual(100*h.DiscountPrice, 85*discount, "deal %d/%d", original, discount)
			rq.LessOrEqual(h.DiscountPrice, original, "deal %d/%d", original, discount)
		}
	}
}
