package pricehistory

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

const noDataRecommendation = "目前無歷史價格資料可供分析。"

// SeasonalHint tells when a category usually sees its deepest discounts.
func SeasonalHint(category value.Category) string {
	switch category {
	case value.CategoryFood:
		return "週末或月底"
	case value.CategoryElectronics:
		return "雙11、週年慶或換季時"
	case value.CategoryApparel:
		return "換季或年中/年末大促"
	case value.CategoryTravel:
		return "平日或淡季"
	case value.CategoryBeauty:
		return "母親節、週年慶或品牌日"
	case value.CategoryLifestyle:
		return "月底或特殊節日"
	default:
		return "促銷活動期間"
	}
}

func recommend(deal entity.Deal, a entity.PriceAnalysis) string {
	p := message.NewPrinter(language.TraditionalChinese)
	amount := func(v int64) string { return p.Sprintf("NT$%d", v) }

	switch a.Verdict {
	case value.VerdictHistoricalLow:
		return fmt.Sprintf(
			"恭喜！這是 90 天內的最低價格，現在是最佳入手時機。根據我們的價格追蹤記錄，此商品在過去三個月的平均售價為 %s，目前價格比平均低 %d%%。建議立即購買，以免錯過這個難得的優惠機會。",
			amount(a.AveragePrice), abs(a.CurrentVsAverage),
		)
	case value.VerdictGoodTime:
		return fmt.Sprintf(
			"目前價格 %s 低於 90 天平均價格 %d%%，是不錯的入手時機。雖然在 %s 曾出現過更低的價格 %s，但以目前的折扣來看仍具有相當的吸引力。如果急需此商品，現在購買是合理的選擇。",
			amount(deal.DiscountPrice), abs(a.CurrentVsAverage), FormatDate(a.LowestPriceDate), amount(a.LowestPrice),
		)
	case value.VerdictWait:
		return fmt.Sprintf(
			"建議先加入追蹤清單，稍後再購買。目前價格 %s 比 90 天平均價格高出 %d%%。根據歷史紀錄，此商品曾在 %s 出現 %s 的低價，若願意等待，有機會節省 %s。通常在%s會有更好的折扣。",
			amount(deal.DiscountPrice), a.CurrentVsAverage, FormatDate(a.LowestPriceDate), amount(a.LowestPrice),
			amount(a.SavingsPotential), SeasonalHint(deal.Category),
		)
	case value.VerdictNormal:
		return fmt.Sprintf(
			"目前價格 %s 接近 90 天平均價格 %s，屬於正常價格區間。如果有需求可以考慮購買，或者可以再觀察一段時間。歷史最低價為 %s（%s），價差約 %s。",
			amount(deal.DiscountPrice), amount(a.AveragePrice), amount(a.LowestPrice),
			FormatDate(a.LowestPriceDate), amount(a.SavingsPotential),
		)
	default:
		return noDataRecommendation
	}
}

// FormatDate renders d as "2026 年 3 月 7 日".
func FormatDate(d value.Date) string {
	return fmt.Sprintf("%d 年 %d 月 %d 日", d.Year(), int(d.Month()), d.Day())
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
