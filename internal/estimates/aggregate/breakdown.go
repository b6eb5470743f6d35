package aggregate

import (
	"sort"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// Palette colours breakdown segments in order of share.
var Palette = []string{
	"#2563eb",
	"#3b82f6",
	"#60a5fa",
	"#93c5fd",
	"#1d4ed8",
	"#1e40af",
	"#1e3a8a",
	"#6366f1",
	"#818cf8",
	"#4f46e5",
}

// Share is one category's slice of the cost distribution.
type Share struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Breakdown computes the cost-share distribution. Only items with a
// positive line total contribute; categories are sorted by value,
// largest first, unlike the table order.
func Breakdown(items []domain.EstimateItem) []Share {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for i := range items {
		line := items[i].LineTotal()
		if line <= 0 {
			continue
		}
		c := items[i].Category
		if _, ok := totals[c]; !ok {
			order = append(order, c)
		}
		totals[c] += line
	}

	var grand float64
	for _, c := range order {
		grand += totals[c]
	}

	out := make([]Share, 0, len(order))
	for _, c := range order {
		s := Share{Name: c, Value: totals[c]}
		if grand > 0 {
			s.Percent = totals[c] / grand * 100
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	for i := range out {
		out[i].Color = Palette[i%len(Palette)]
	}
	return out
}
