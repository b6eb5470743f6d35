package domain

import (
	"fmt"
	"strings"
)

// Unit is a measurement unit of an estimate line.
type Unit string

const (
	UnitSquareMeter Unit = "м2"
	UnitLinearMeter Unit = "м/п"
	UnitPiece       Unit = "шт"
	UnitPack        Unit = "упак"
	UnitSet         Unit = "компл"
	UnitKilogram    Unit = "кг"
	UnitLiter       Unit = "л"
	UnitPoint       Unit = "точка"
	UnitBranch      Unit = "ветка"
)

const (
	// DefaultUnit is assigned to freshly added items.
	DefaultUnit = UnitSquareMeter
	// FallbackUnit replaces out-of-set units coming from external sources.
	FallbackUnit = UnitPiece
)

// Units lists every accepted unit in display order.
var Units = []Unit{
	UnitSquareMeter,
	UnitLinearMeter,
	UnitPiece,
	UnitPack,
	UnitSet,
	UnitKilogram,
	UnitLiter,
	UnitPoint,
	UnitBranch,
}

// Valid reports whether u is one of Units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ParseUnit accepts a unit label, tolerating surrounding spaces.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.TrimSpace(s))
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// NormalizeUnit maps anything outside the enumerated set to fallback.
func NormalizeUnit(s string, fallback Unit) Unit {
	if u, err := ParseUnit(s); err == nil {
		return u
	}
	return fallback
}
