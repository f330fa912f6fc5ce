package costing

import "strings"

// Unit is the symbol an ingredient is bought or consumed in.
type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "gr"
	Liter      Unit = "lt"
	Milliliter Unit = "ml"
	Piece      Unit = "piezas"
	Cup        Unit = "tazas"
	Each       Unit = "unidades"
)

// Family groups units that convert into each other by a fixed multiplier.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyMass
	FamilyVolume
	FamilyCount
)

// Units lists every accepted unit in the order forms offer them.
var Units = []Unit{Kilogram, Liter, Milliliter, Gram, Piece, Cup, Each}

var unitAliases = map[string]Unit{
	"l": Liter,
	"g": Gram,
}

// ParseUnit normalizes a raw unit symbol. Matching is case-insensitive.
func ParseUnit(raw string) (Unit, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := unitAliases[s]; ok {
		return alias, true
	}
	for _, u := range Units {
		if string(u) == s {
			return u, true
		}
	}
	return Unit(s), false
}

// Family reports which conversion family u belongs to.
func (u Unit) Family() Family {
	switch u {
	case Kilogram, Gram:
		return FamilyMass
	case Liter, Milliliter:
		return FamilyVolume
	case Piece, Cup, Each:
		return FamilyCount
	default:
		return FamilyUnknown
	}
}

// baseMultiplier is the size of one u expressed in its family's base unit (gr or ml).
func (u Unit) baseMultiplier() float64 {
	switch u {
	case Kilogram, Liter:
		return 1000
	default:
		return 1
	}
}

// ConversionFactor returns f such that quantity_in_to = quantity_in_from * f.
//
// Units of different families, count units and unknown symbols convert 1:1.
// That fallback keeps the calculation total; it is not a unit-safety check,
// use Compatible to detect it.
func ConversionFactor(from, to Unit) float64 {
	if from == to {
		return 1
	}
	ff, tf := from.Family(), to.Family()
	if ff != tf || (ff != FamilyMass && ff != FamilyVolume) {
		return 1
	}
	return from.baseMultiplier() / to.baseMultiplier()
}

// Compatible reports whether converting from one unit to the other is physically meaningful.
func Compatible(from, to Unit) bool {
	if from == to {
		return true
	}
	f := from.Family()
	return f == to.Family() && (f == FamilyMass || f == FamilyVolume)
}
