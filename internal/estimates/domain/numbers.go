package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a user-typed decimal. A comma is accepted as the
// decimal separator and spaces used as thousands separators are ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ClampQuantity returns v when it is a positive finite number and 0
// otherwise, so negative values, NaN and -0 never reach an item.
func ClampQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

// CoercePrice keeps any finite price, mapping NaN, Inf and -0 to 0.
func CoercePrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return 0
	}
	return v
}

// QuantityFromInput parses and clamps a quantity field.
func QuantityFromInput(s string) float64 {
	v, _ := ParseNumber(s)
	return ClampQuantity(v)
}

// PriceFromInput parses a price field, defaulting to 0.
func PriceFromInput(s string) float64 {
	v, _ := ParseNumber(s)
	return CoercePrice(v)
}
