package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"money_saver/internal/transport/bot/middleware"
	"money_saver/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnDeals, th.CommandEqual("deals"))
	adminGroup.HandleMessage(h.OnReload, th.CommandEqual("reload"))
	adminGroup.HandleMessage(h.OnStartScan, th.CommandEqual("startscan"))
	adminGroup.HandleMessage(h.OnStopScan, th.CommandEqual("stopscan"))
	adminGroup.HandleMessage(h.OnWatch, th.CommandEqual("watch"))
	adminGroup.HandleMessage(h.OnUnwatch, th.CommandEqual("unwatch"))
	adminGroup.HandleMessage(h.OnWatchList, th.CommandEqual("watchlist"))
	adminGroup.HandleMessage(h.OnClearWatch, th.CommandEqual("clearwatch"))
	adminGroup.HandleMessage(h.OnSetWatch, th.CommandEqual("setwatch"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnDealsCallback, th.CallbackDataPrefix(view.CallbackDealsPrefix))
}
