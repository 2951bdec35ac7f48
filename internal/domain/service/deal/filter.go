package deal

import (
	"strings"

	"money_saver/internal/domain/entity"
)

// AllOption matches every category or store.
const AllOption = "All"

// DiscountThresholds are the minimum discount options offered to clients.
func DiscountThresholds() []int64 {
	return []int64{0, 10, 30, 50, 70}
}

// Filter is a conjunction of predicates over a deal. Zero value matches all.
type Filter struct {
	Category    string
	Store       string
	MinDiscount int64
	Query       string
}

func (f Filter) Match(d entity.Deal) bool {
	if !wildcard(f.Category) && d.Category.String() != f.Category {
		return false
	}

	if !wildcard(f.Store) && d.StoreName != f.Store {
		return false
	}

	if d.DiscountPercent() < f.MinDiscount {
		return false
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(d.ProductName), query) ||
		strings.Contains(strings.ToLower(d.StoreName), query) ||
		strings.Contains(strings.ToLower(d.Description), query)
}

func wildcard(v string) bool {
	return v == "" || v == AllOption
}
