package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"money_saver/internal/transport/bot/view"
	"money_saver/pkg/logx"
)

// OnDealsCallback листает страницы /deals. Формат: "deals_page:<page>:<category>"
func (h *Handler) OnDealsCallback(ctx *th.Context, query telego.CallbackQuery) error {
	page, category, ok := view.ParseDealsCallbackData(query.Data)
	if !ok {
		page = 1
	}

	text, keyboard, err := h.dealsPage(ctx, page, category)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.DealsError).WithShowAlert())

		return err
	}

	if query.Message != nil {
		_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(query.Message.GetChat().ID),
			MessageID:   query.Message.GetMessageID(),
			Text:        text,
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: keyboard,
		})
		// Telegram отвечает ошибкой, если текст не изменился
		if err != nil {
			logger(ctx).Debug("EditMessageText", logx.Error(err))
		}
	}

	// Обязательно отвечаем на коллбэк, чтобы убрать часики
	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}
