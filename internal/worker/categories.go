package worker

import (
	"slices"

	"github.com/samber/lo"

	"money_saver/internal/domain/value"
)

// AddCategory добавляет категорию в список наблюдения (если ещё нет)
func (w *DealScanner) AddCategory(c value.Category) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !slices.Contains(w.categories, c) {
		w.categories = append(w.categories, c)
	}
}

func (w *DealScanner) RemoveCategory(c value.Category) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.categories = slices.DeleteFunc(w.categories, func(existing value.Category) bool {
		return existing == c
	})
}

// Categories возвращает копию текущего списка
func (w *DealScanner) Categories() []value.Category {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.categories) == 0 {
		return nil
	}

	return slices.Clone(w.categories)
}

func (w *DealScanner) SetCategories(categories []value.Category) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(categories) == 0 {
		w.categories = nil
		return
	}

	w.categories = lo.Uniq(categories)
}

// ClearCategories очищает список (будут проверяться все категории)
func (w *DealScanner) ClearCategories() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.categories = nil
}

// HasCategory reports whether deals of the category are watched. An empty
// list watches everything.
func (w *DealScanner) HasCategory(c value.Category) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.categories) == 0 || slices.Contains(w.categories, c)
}
