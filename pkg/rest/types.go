// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Deal Скидка из фида
type Deal struct {
	ID              string  `json:"id"`
	StoreName       string  `json:"storeName"`
	ProductName     string  `json:"productName"`
	Description     string  `json:"description"`
	Condition       string  `json:"condition"`
	ValidPeriod     string  `json:"validPeriod"`
	Category        string  `json:"category"`
	OriginalPrice   int64   `json:"originalPrice"`
	DiscountPrice   int64   `json:"discountPrice"`
	CouponCode      *string `json:"couponCode"`
	Savings         int64   `json:"savings"`
	DiscountPercent int64   `json:"discountPercent"`
	HasHistory      bool    `json:"hasHistory"`
}

// DealList Отфильтрованный список скидок
type DealList struct {
	Deals []Deal `json:"deals"`
	Count int    `json:"count"`
}

// PriceHistoryEntry Цена на дату (YYYY-MM-DD)
type PriceHistoryEntry struct {
	Date          string `json:"date"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discountPrice"`
}

type PriceHistory struct {
	History []PriceHistoryEntry `json:"history"`
}

// AnalyzeRequest История цен, переданная клиентом
type AnalyzeRequest struct {
	History []PriceHistoryEntry `json:"history" validate:"max=3660"`
}

type PriceAnalysis struct {
	IsHistoricalLow  bool   `json:"isHistoricalLow"`
	LowestPrice      int64  `json:"lowestPrice"`
	LowestPriceDate  string `json:"lowestPriceDate"`
	AveragePrice     int64  `json:"averagePrice"`
	CurrentVsAverage int64  `json:"currentVsAverage"`
	Trend            string `json:"trend"`
	Recommendation   string `json:"recommendation"`
	SavingsPotential int64  `json:"savingsPotential"`
	Verdict          string `json:"verdict"`
}

type SavingsOutlook struct {
	MaxSavings    int64  `json:"maxSavings"`
	AvgSavings    int64  `json:"avgSavings"`
	BestDayOfWeek string `json:"bestDayOfWeek"`
}

// DealAnalysis Анализ скидки вместе с рядом, по которому он посчитан
type DealAnalysis struct {
	Deal        Deal                `json:"deal"`
	History     []PriceHistoryEntry `json:"history"`
	Synthesized bool                `json:"synthesized"`
	Analysis    PriceAnalysis       `json:"analysis"`
	Outlook     SavingsOutlook      `json:"outlook"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Overview struct {
	TotalSavings int64           `json:"totalSavings"`
	DealCount    int             `json:"dealCount"`
	Categories   []CategoryCount `json:"categories"`
	TopDeals     []Deal          `json:"topDeals"`
}

type Facets struct {
	Categories         []string `json:"categories"`
	Stores             []string `json:"stores"`
	DiscountThresholds []int64  `json:"discountThresholds"`
}

type FeedReload struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
