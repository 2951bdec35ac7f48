package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
)

const (
	StartMessage = "👋 <b>省錢小幫手</b>\n\n" +
		"/deals [分類] 瀏覽優惠\n" +
		"/status 狀態\n" +
		"/startscan /stopscan 啟動或停止掃描\n" +
		"/watch /unwatch /setwatch /watchlist /clearwatch 管理關注分類\n" +
		"/reload 重新載入優惠資料"

	DealsEmpty    = "目前沒有符合條件的優惠"
	DealsError    = "❌ 無法取得優惠資料"
	ReloadFailed  = "❌ 重新載入失敗"
	ReloadSuccess = "✅ 已載入 %d 筆優惠"

	ScannerAlreadyRunning = "掃描已在執行中！"
	ScannerNotRunning     = "掃描尚未啟動！"
	ScannerStarted        = "🟢 掃描已啟動"
	ScannerStopped        = "🔴 掃描已停止"
	ScannerStartFailed    = "❌ 掃描啟動失敗"

	WatchUsage    = "❌ 用法：/watch <code>分類</code>"
	UnwatchUsage  = "❌ 用法：/unwatch <code>分類</code>"
	SetWatchUsage = "❌ 用法：/setwatch <code>分類1</code> <code>分類2</code> ..."
	WatchCleared  = "✅ 已清空關注清單，將掃描所有分類"

	DealsPageSize = 5

	CallbackDealsPrefix = "deals_page:"
)

func StatusText(running bool, categories []value.Category, loadedAt time.Time) string {
	scanner := "🔴 已停止"
	if running {
		scanner = "🟢 執行中"
	}

	loaded := "尚未載入"
	if !loadedAt.IsZero() {
		loaded = loadedAt.Format(time.DateTime)
	}

	return fmt.Sprintf("📊 <b>系統狀態</b>\n\n🔍 <b>掃描：</b>%s\n📦 <b>關注：</b>%s\n🕒 <b>資料更新：</b>%s",
		scanner, WatchedText(categories), loaded)
}

func WatchedText(categories []value.Category) string {
	if len(categories) == 0 {
		return "所有分類"
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.String())
	}

	return strings.Join(names, "、")
}

// DealsPage renders one page of deals. The page is clamped into range; the
// returned values are the page actually shown and the page count.
func DealsPage(deals []entity.Deal, page int, category string) (string, int, int) {
	totalPages := max((len(deals)+DealsPageSize-1)/DealsPageSize, 1)
	page = min(max(page, 1), totalPages)

	if len(deals) == 0 {
		return DealsEmpty, page, totalPages
	}

	start := (page - 1) * DealsPageSize
	end := min(start+DealsPageSize, len(deals))

	p := message.NewPrinter(language.TraditionalChinese)

	var sb strings.Builder

	title := "全部"
	if category != "" {
		title = category
	}

	sb.WriteString(fmt.Sprintf("🛍 <b>優惠：%s</b> (%d/%d)\n\n", html.EscapeString(title), page, totalPages))

	for _, d := range deals[start:end] {
		sb.WriteString(p.Sprintf("• <b>%s</b> %s\n  NT$%d <s>NT$%d</s> -%d%%\n",
			html.EscapeString(d.StoreName),
			html.EscapeString(d.ProductName),
			d.DiscountPrice,
			d.OriginalPrice,
			d.DiscountPercent(),
		))
	}

	return sb.String(), page, totalPages
}

// DealsCallbackData encodes a page switch; the category rides along so the
// next page keeps the filter.
func DealsCallbackData(page int, category string) string {
	return fmt.Sprintf("%s%d:%s", CallbackDealsPrefix, page, category)
}

func ParseDealsCallbackData(data string) (int, string, bool) {
	rest, ok := strings.CutPrefix(data, CallbackDealsPrefix)
	if !ok {
		return 0, "", false
	}

	rawPage, category, _ := strings.Cut(rest, ":")

	var page int
	if _, err := fmt.Sscanf(rawPage, "%d", &page); err != nil {
		return 0, "", false
	}

	return page, category, true
}
