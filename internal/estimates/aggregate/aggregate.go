// Package aggregate derives totals, progress and category views from an
// item list. Nothing here is cached: every figure is recomputed from the
// items on each call.
package aggregate

import (
	"math"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// Total sums quantity * price over all items.
func Total(items []domain.EstimateItem) float64 {
	var sum float64
	for i := range items {
		sum += items[i].LineTotal()
	}
	return sum
}

// Progress is the rounded percentage of items with both quantity and
// price positive. An empty list has progress 0.
func Progress(items []domain.EstimateItem) int {
	if len(items) == 0 {
		return 0
	}
	filled := 0
	for i := range items {
		if items[i].Filled() {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(items)) * 100))
}

// Categories returns the distinct category labels in order of first
// appearance.
func Categories(items []domain.EstimateItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for i := range items {
		c := items[i].Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// HasCategory reports whether any item references the label.
func HasCategory(items []domain.EstimateItem, category string) bool {
	for i := range items {
		if items[i].Category == category {
			return true
		}
	}
	return false
}

// CategorySubtotal sums line totals of the items carrying the label.
func CategorySubtotal(items []domain.EstimateItem, category string) float64 {
	var sum float64
	for i := range items {
		if items[i].Category == category {
			sum += items[i].LineTotal()
		}
	}
	return sum
}

// ItemsIn returns the items of one category, keeping their relative order.
func ItemsIn(items []domain.EstimateItem, category string) []domain.EstimateItem {
	out := make([]domain.EstimateItem, 0)
	for i := range items {
		if items[i].Category == category {
			out = append(out, items[i])
		}
	}
	return out
}

// CategoryGroup is one section of the estimate table.
type CategoryGroup struct {
	Name     string                `json:"name"`
	Items    []domain.EstimateItem `json:"items"`
	Subtotal float64               `json:"subtotal"`
}

// Grouped splits items into sections following the display order.
func Grouped(items []domain.EstimateItem) []CategoryGroup {
	names := SortedCategories(items)
	out := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryGroup{
			Name:     name,
			Items:    ItemsIn(items, name),
			Subtotal: CategorySubtotal(items, name),
		})
	}
	return out
}

// Summary backs the headline cards of an estimate.
type Summary struct {
	Total         float64 `json:"total"`
	Progress      int     `json:"progress"`
	CategoryCount int     `json:"categoryCount"`
	ItemCount     int     `json:"itemCount"`
}

func Summarize(items []domain.EstimateItem) Summary {
	return Summary{
		Total:         Total(items),
		Progress:      Progress(items),
		CategoryCount: len(Categories(items)),
		ItemCount:     len(items),
	}
}
