package helpers

import (
	"strings"
)

// SplitList splits a comma-separated list, trimming blanks and upper-casing names
func SplitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			items = append(items, part)
		}
	}
	return items
}
