package handler

import (
	"strings"

	"money_saver/internal/domain/value"
)

// commandArgs drops the command itself from the message text.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 { //nolint:mnd
		return nil
	}

	return fields[1:]
}

// parseCategories splits args into known categories and the rest.
func parseCategories(args []string) ([]value.Category, []string) {
	var (
		categories []value.Category
		unknown    []string
	)

	for _, arg := range args {
		c, err := value.ParseCategory(arg)
		if err != nil {
			unknown = append(unknown, arg)
			continue
		}

		categories = append(categories, c)
	}

	return categories, unknown
}
