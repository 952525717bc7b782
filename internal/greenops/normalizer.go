package greenops

import (
	"math"
	"strings"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// unitFactor returns the kilogram conversion factor for a mass unit.
// Matching is case-insensitive and accepts the "CO2e" suffixed spellings.
func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e", "":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a CO2e mass in unit to kilograms.
// An empty unit means kilograms.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, calcerr.Invalidf("value", value, "must be a finite number")
	}
	if value < 0 {
		return 0, calcerr.Invalidf("value", value, "must be >= 0")
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, calcerr.Invalid("unit", unit, "unrecognized mass unit")
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, calcerr.Invalidf("value", value, "overflows when converted to kg")
	}
	return result, nil
}

// ConvertFromKg expresses a kilogram quantity in unit.
func ConvertFromKg(kg float64, unit string) (float64, error) {
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, calcerr.Invalid("unit", unit, "unrecognized mass unit")
	}
	return kg / factor, nil
}

// IsRecognizedUnit reports whether unit is a supported mass unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
