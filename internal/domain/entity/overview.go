package entity

import (
	"time"

	"money_saver/internal/domain/value"
)

type CategoryCount struct {
	Category value.Category
	Count    int
}

// Overview summarizes a filtered set of deals.
type Overview struct {
	TotalSavings int64
	DealCount    int
	Categories   []CategoryCount // по порядку первого появления
	TopDeals     []Deal
}

type Facets struct {
	Categories         []value.Category
	Stores             []string
	DiscountThresholds []int64
}

// Alert is raised when a watched deal sits at its historical low.
type Alert struct {
	Deal       Deal          `json:"deal"`
	Analysis   PriceAnalysis `json:"analysis"`
	DetectedAt time.Time     `json:"detectedAt"`
}
