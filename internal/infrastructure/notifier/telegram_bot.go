package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/value"
	"money_saver/internal/metrics"
	"money_saver/pkg/logx"
)

//nolint:gochecknoglobals
var trendLabels = map[value.Trend]string{
	value.TrendIncreasing: "上漲",
	value.TrendDecreasing: "下跌",
	value.TrendStable:     "持平",
}

type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run отправляет алерты из канала, пока он не закрыт.
func (b *TelegramBot) Run(ctx context.Context, alerts <-chan entity.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return nil
			}

			if err := b.SendAlert(ctx, alert); err != nil {
				logger(ctx).Error("failed to send alert",
					slog.String(logx.FieldDealID, alert.Deal.ID),
					logx.Error(err),
				)
			}
		}
	}
}

func (b *TelegramBot) SendAlert(ctx context.Context, alert entity.Alert) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatAlert(alert),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		metrics.Alerts.WithLabelValues(metrics.ResultFailed).Inc()

		return fmt.Errorf("notifier.SendAlert: %w", err)
	}

	metrics.Alerts.WithLabelValues(metrics.ResultOK).Inc()

	return nil
}

func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("notifier.SendText: %w", err)
	}

	return nil
}

// FormatAlert renders the alert as a Telegram HTML message.
func FormatAlert(alert entity.Alert) string {
	p := message.NewPrinter(language.TraditionalChinese)
	d := alert.Deal

	text := p.Sprintf(
		"🔥 <b>歷史低價！</b>\n\n"+
			"🏬 <b>%s</b> %s\n"+
			"💰 NT$%d <s>NT$%d</s> (-%d%%)\n"+
			"📊 平均 NT$%d，趨勢 %s\n",
		html.EscapeString(d.StoreName),
		html.EscapeString(d.ProductName),
		d.DiscountPrice,
		d.OriginalPrice,
		d.DiscountPercent(),
		alert.Analysis.AveragePrice,
		trendLabels[alert.Analysis.Trend],
	)

	if d.HasCoupon() {
		text += fmt.Sprintf("🎟 <code>%s</code>\n", html.EscapeString(*d.CouponCode))
	}

	if d.ValidPeriod != "" {
		text += "⏳ " + html.EscapeString(d.ValidPeriod) + "\n"
	}

	return text + "\n" + html.EscapeString(alert.Analysis.Recommendation)
}
