// Package units normalizes free-text measurement units and converts
// quantities between the small set of units the kitchen actually uses.
package units

import "strings"

// Canonical unit tokens
const (
	Gram       = "g"
	Kilogram   = "kg"
	Milliliter = "ml"
	Liter      = "l"
	Ounce      = "oz"
	Pound      = "lb"
	Each       = "each"
	Bunch      = "bunch"
	Sprig      = "sprig"
	Pinch      = "pinch"
	Tablespoon = "tbsp"
	Teaspoon   = "tsp"
	Cup        = "cup"
)

var synonyms = map[string]string{
	"g":           Gram,
	"gr":          Gram,
	"gram":        Gram,
	"grams":       Gram,
	"kg":          Kilogram,
	"kilo":        Kilogram,
	"kilos":       Kilogram,
	"kilogram":    Kilogram,
	"kilograms":   Kilogram,
	"ml":          Milliliter,
	"milliliter":  Milliliter,
	"milliliters": Milliliter,
	"millilitre":  Milliliter,
	"millilitres": Milliliter,
	"l":           Liter,
	"liter":       Liter,
	"liters":      Liter,
	"litre":       Liter,
	"litres":      Liter,
	"oz":          Ounce,
	"ounce":       Ounce,
	"ounces":      Ounce,
	"lb":          Pound,
	"lbs":         Pound,
	"pound":       Pound,
	"pounds":      Pound,
	"each":        Each,
	"ea":          Each,
	"piece":       Each,
	"pieces":      Each,
	"pc":          Each,
	"pcs":         Each,
	"unit":        Each,
	"units":       Each,
	"bunch":       Bunch,
	"bunches":     Bunch,
	"sprig":       Sprig,
	"sprigs":      Sprig,
	"pinch":       Pinch,
	"pinches":     Pinch,
	"tbsp":        Tablespoon,
	"tbs":         Tablespoon,
	"tablespoon":  Tablespoon,
	"tablespoons": Tablespoon,
	"tsp":         Teaspoon,
	"teaspoon":    Teaspoon,
	"teaspoons":   Teaspoon,
	"cup":         Cup,
	"cups":        Cup,
}

// Normalize maps a raw unit string to its canonical token. Unknown
// units are lowercased and trimmed but otherwise passed through, so
// normalization never fails.
func Normalize(raw string) string {
	unit := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := synonyms[unit]; ok {
		return canonical
	}
	return unit
}

const (
	gramsPerOunce    = 28.3495
	kilosPerPound    = 0.453592
)

type conversion struct {
	from string
	to   string
}

// Directed conversion factors. Only the pairs listed here are
// convertible; there is deliberately no inverse lookup, so a missing
// pair means "incompatible, do not guess". The ml/g and l/kg entries
// treat water-like liquids as 1:1 by mass.
var factors = map[conversion]float64{
	{Gram, Kilogram}:   0.001,
	{Kilogram, Gram}:   1000,
	{Milliliter, Liter}: 0.001,
	{Liter, Milliliter}: 1000,
	{Ounce, Gram}:      gramsPerOunce,
	{Gram, Ounce}:      1 / gramsPerOunce,
	{Pound, Kilogram}:  kilosPerPound,
	{Kilogram, Pound}:  1 / kilosPerPound,
	{Milliliter, Gram}: 1,
	{Gram, Milliliter}: 1,
	{Liter, Kilogram}:  1,
	{Kilogram, Liter}:  1,
}

// Convert converts a quantity between two units. The second return
// value is false when no conversion path exists. No rounding is
// applied here; callers round at their own boundaries.
func Convert(quantity float64, fromUnit, toUnit string) (float64, bool) {
	from := Normalize(fromUnit)
	to := Normalize(toUnit)
	if from == to {
		return quantity, true
	}
	if factor, ok := factors[conversion{from, to}]; ok {
		return quantity * factor, true
	}
	return 0, false
}

// Upscale bumps a quantity into the next unit up once it crosses a
// thousand: grams become kilograms and milliliters become liters.
// Anything else is returned unchanged. The rule is applied again after
// list scaling, so it must not assume it has already run.
func Upscale(quantity float64, unit string) (float64, string) {
	switch Normalize(unit) {
	case Gram:
		if quantity >= 1000 {
			return quantity / 1000, "kg"
		}
	case Milliliter:
		if quantity >= 1000 {
			return quantity / 1000, "L"
		}
	}
	return quantity, unit
}
