package entity

import "money_saver/internal/domain/value"

// PriceHistoryEntry is one weekly sample. Price holds the list price at that
// date, DiscountPrice what the deal actually cost.
type PriceHistoryEntry struct {
	Date          value.Date `json:"date"`
	Price         int64      `json:"price"`
	DiscountPrice int64      `json:"discountPrice"`
}

type PriceAnalysis struct {
	IsHistoricalLow  bool          `json:"isHistoricalLow"`
	LowestPrice      int64         `json:"lowestPrice"`
	LowestPriceDate  value.Date    `json:"lowestPriceDate"`
	AveragePrice     int64         `json:"averagePrice"`
	CurrentVsAverage int64         `json:"currentVsAverage"` // signed percent
	Trend            value.Trend   `json:"trend"`
	Recommendation   string        `json:"recommendation"`
	SavingsPotential int64         `json:"savingsPotential"`
	Verdict          value.Verdict `json:"verdict"`
}

type SavingsOutlook struct {
	MaxSavings    int64  `json:"maxSavings"`
	AvgSavings    int64  `json:"avgSavings"`
	BestDayOfWeek string `json:"bestDayOfWeek"`
}

// DealReport bundles a deal with the series it was analyzed against.
type DealReport struct {
	Deal        Deal
	History     []PriceHistoryEntry
	Synthesized bool
	Analysis    PriceAnalysis
	Outlook     SavingsOutlook
}
