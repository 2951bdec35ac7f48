package handler

import (
	"context"
	"time"

	"money_saver/internal/domain/entity"
	"money_saver/internal/domain/service/deal"
	"money_saver/internal/domain/value"
)

type dealService interface {
	List(ctx context.Context, filter deal.Filter) ([]entity.Deal, error)
	Load(ctx context.Context) (int, error)
	LoadedAt() time.Time
}

type scanner interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	AddCategory(c value.Category)
	RemoveCategory(c value.Category)
	Categories() []value.Category
	SetCategories(categories []value.Category)
	ClearCategories()
	HasCategory(c value.Category) bool
}

type Handler struct {
	baseCtx context.Context //nolint:containedctx // сканер живёт дольше апдейта
	deals   dealService
	scanner scanner
}

func New(baseCtx context.Context, deals dealService, scanner scanner) *Handler {
	return &Handler{
		baseCtx: baseCtx,
		deals:   deals,
		scanner: scanner,
	}
}
