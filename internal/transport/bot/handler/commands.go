package handler

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"money_saver/internal/domain/service/deal"
	"money_saver/internal/transport/bot/view"
	"money_saver/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID,
		view.StatusText(h.scanner.IsRunning(), h.scanner.Categories(), h.deals.LoadedAt()))
}

func (h *Handler) OnStartScan(ctx *th.Context, msg telego.Message) error {
	if h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerAlreadyRunning)
	}

	if err := h.scanner.Start(h.baseCtx); err != nil {
		logger(ctx).Error("scanner.Start", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.ScannerStartFailed)
	}

	return h.send(ctx, msg.Chat.ID, view.ScannerStarted)
}

func (h *Handler) OnStopScan(ctx *th.Context, msg telego.Message) error {
	if !h.scanner.IsRunning() {
		return h.send(ctx, msg.Chat.ID, view.ScannerNotRunning)
	}

	h.scanner.Stop()

	return h.send(ctx, msg.Chat.ID, view.ScannerStopped)
}

// OnDeals показывает первую страницу скидок
// Использование: /deals [категория]
func (h *Handler) OnDeals(ctx *th.Context, msg telego.Message) error {
	var category string
	if args := commandArgs(msg.Text); len(args) > 0 {
		category = args[0]
	}

	text, keyboard, err := h.dealsPage(ctx, 1, category)
	if err != nil {
		logger(ctx).Error("dealsPage", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.DealsError)
	}

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      tu.ID(msg.Chat.ID),
		Text:        text,
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: keyboard,
	})

	return err
}

func (h *Handler) dealsPage(ctx *th.Context, page int, category string) (string, *telego.InlineKeyboardMarkup, error) {
	deals, err := h.deals.List(ctx, deal.Filter{Category: category})
	if err != nil {
		return "", nil, fmt.Errorf("deals.List: %w", err)
	}

	text, page, totalPages := view.DealsPage(deals, page, category)

	return text, paginationKeyboard(page, totalPages, category), nil
}

func paginationKeyboard(page, totalPages int, category string) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(view.DealsCallbackData(page-1, category)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, totalPages)).
		WithCallbackData("noop"))

	if page < totalPages {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(view.DealsCallbackData(page+1, category)))
	}

	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(buttons...),
	)
}

func (h *Handler) OnReload(ctx *th.Context, msg telego.Message) error {
	count, err := h.deals.Load(ctx)
	if err != nil {
		logger(ctx).Error("deals.Load", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.ReloadFailed)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.ReloadSuccess, count))
}

// OnWatch добавляет категорию в список наблюдения
// Использование: /watch 美食
func (h *Handler) OnWatch(ctx *th.Context, msg telego.Message) error {
	categories, unknown := parseCategories(commandArgs(msg.Text))
	if len(categories) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.WatchUsage+unknownSuffix(unknown))
	}

	for _, c := range categories {
		h.scanner.AddCategory(c)
	}

	return h.sendHTML(ctx, msg.Chat.ID, "✅ 關注："+view.WatchedText(h.scanner.Categories())+unknownSuffix(unknown))
}

func (h *Handler) OnUnwatch(ctx *th.Context, msg telego.Message) error {
	categories, unknown := parseCategories(commandArgs(msg.Text))
	if len(categories) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.UnwatchUsage+unknownSuffix(unknown))
	}

	for _, c := range categories {
		h.scanner.RemoveCategory(c)
	}

	return h.sendHTML(ctx, msg.Chat.ID, "✅ 關注："+view.WatchedText(h.scanner.Categories()))
}

func (h *Handler) OnWatchList(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, "📋 關注："+view.WatchedText(h.scanner.Categories()))
}

func (h *Handler) OnClearWatch(ctx *th.Context, msg telego.Message) error {
	h.scanner.ClearCategories()

	return h.send(ctx, msg.Chat.ID, view.WatchCleared)
}

// OnSetWatch заменяет список целиком
// Использование: /setwatch 美食 旅遊
func (h *Handler) OnSetWatch(ctx *th.Context, msg telego.Message) error {
	categories, unknown := parseCategories(commandArgs(msg.Text))
	if len(categories) == 0 {
		return h.sendHTML(ctx, msg.Chat.ID, view.SetWatchUsage+unknownSuffix(unknown))
	}

	h.scanner.SetCategories(categories)

	return h.sendHTML(ctx, msg.Chat.ID, "✅ 關注："+view.WatchedText(h.scanner.Categories())+unknownSuffix(unknown))
}

func unknownSuffix(unknown []string) string {
	if len(unknown) == 0 {
		return ""
	}

	return "\n\n⚠️ 未知分類：" + html.EscapeString(strings.Join(unknown, ", "))
}

// Вспомогательные методы

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    tu.ID(chatID),
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(chatID),
		Text:   text,
	})

	return err
}
