package pricehistory

import (
	"sync"
	"time"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

const (
	DefaultDaysBack = 90

	sampleStepDays = 7
	maxVariation   = 0.15
	floorPercent   = 85
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

type RandomFunc func() float64

func (f RandomFunc) Float64() float64 {
	return f()
}

// Synthesizer produces weekly sampled price series for deals that ship
// without one.
type Synthesizer struct {
	mu       sync.Mutex
	random   RandomSource
	now      func() time.Time
	daysBack int
}

func NewSynthesizer(random RandomSource) *Synthesizer {
	return &Synthesizer{
		random:   random,
		now:      time.Now,
		daysBack: DefaultDaysBack,
	}
}

func (s *Synthesizer) WithClock(now func() time.Time) *Synthesizer {
	s.now = now
	return s
}

func (s *Synthesizer) WithDaysBack(daysBack int) *Synthesizer {
	s.daysBack = daysBack
	return s
}

func (s *Synthesizer) DaysBack() int {
	return s.daysBack
}

func (s *Synthesizer) Synthesize(deal entity.Deal) []entity.PriceHistoryEntry {
	return s.SynthesizeDays(deal, s.daysBack)
}

// SynthesizeDays returns floor(daysBack/7)+1 entries, oldest first. The last
// entry is dated today and carries the current discount price; every other
// one lies within [ceil(0.85*discount), original].
func (s *Synthesizer) SynthesizeDays(deal entity.Deal, daysBack int) []entity.PriceHistoryEntry {
	samples := max(daysBack, 0) / sampleStepDays
	today := value.DateOf(s.now())

	lower := ceilPercent(deal.DiscountPrice, floorPercent)
	history := make([]entity.PriceHistoryEntry, 0, samples+1)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := samples; i >= 0; i-- {
		price := deal.DiscountPrice

		if i > 0 {
			factor := s.random.Float64()*2 - 1
			current := float64(deal.DiscountPrice)

			price = roundHalfUp(current + current*maxVariation*factor)
			price = min(max(price, lower), deal.OriginalPrice)
		}

		history = append(history, entity.PriceHistoryEntry{
			Date:          today.AddDays(-sampleStepDays * i),
			Price:         deal.OriginalPrice,
			DiscountPrice: price,
		})
	}

	return history
}

// ceilPercent is ceil(v*percent/100) for non-negative v.
func ceilPercent(v, percent int64) int64 {
	if v <= 0 {
		return v * percent / 100
	}

	return (v*percent + 99) / 100
}
