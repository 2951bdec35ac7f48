package value

import (
	"errors"
	"fmt"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category is the closed set of deal categories used by the feed.
type Category string

const (
	CategoryFood        Category = "美食"
	CategoryElectronics Category = "3C家電"
	CategoryApparel     Category = "服飾"
	CategoryTravel      Category = "旅遊"
	CategoryBeauty      Category = "美妝"
	CategoryLifestyle   Category = "生活"
	CategoryOther       Category = "其他"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryElectronics,
		CategoryApparel,
		CategoryTravel,
		CategoryBeauty,
		CategoryLifestyle,
		CategoryOther,
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownCategory)
	}

	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryElectronics, CategoryApparel, CategoryTravel,
		CategoryBeauty, CategoryLifestyle, CategoryOther:
		return true
	}

	return false
}

func (c Category) String() string {
	return string(c)
}
