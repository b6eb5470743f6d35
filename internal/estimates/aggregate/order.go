package aggregate

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
)

// SortedCategories returns the distinct labels in display order.
func SortedCategories(items []domain.EstimateItem) []string {
	return SortCategoryLabels(Categories(items))
}

// SortCategoryLabels orders labels for display: two labels that both start
// with an integer compare numerically by that integer, any other pair
// compares with Russian collation. Equal numeric prefixes fall back to
// collation so the order stays total.
func SortCategoryLabels(labels []string) []string {
	out := append([]string(nil), labels...)
	col := collate.New(language.Russian)
	sort.SliceStable(out, func(i, j int) bool {
		return compareLabels(col, out[i], out[j]) < 0
	})
	return out
}

func compareLabels(col *collate.Collator, a, b string) int {
	an, aok := leadingInt(a)
	bn, bok := leadingInt(b)
	if aok && bok && an != bn {
		if an < bn {
			return -1
		}
		return 1
	}
	return col.CompareString(a, b)
}

// leadingInt reads an optionally signed run of decimal digits at the start
// of s after leading whitespace, so "10. Малярные работы" yields 10 and
// "Отделка" yields nothing.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
