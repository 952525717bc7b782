package greenops

import (
	"fmt"
	"strings"
)

// EquivalencyType is a relatable real-world comparison for a CO2e mass.
type EquivalencyType string

// Supported equivalencies.
const (
	EquivalencyKmDriven           EquivalencyType = "km_driven"
	EquivalencySmartphonesCharged EquivalencyType = "smartphones_charged"
	EquivalencyTreeSeedlings      EquivalencyType = "tree_seedlings"
)

// equivalencyFactor couples an equivalency with its EPA divisor and phrasing.
type equivalencyFactor struct {
	kind   EquivalencyType
	factor float64
	label  string
	phrase string
}

//nolint:gochecknoglobals // Constant lookup table.
var equivalencyFactors = []equivalencyFactor{
	{EquivalencyKmDriven, KmDrivenFactor, "km driven", "driving ~%s km"},
	{EquivalencySmartphonesCharged, SmartphoneChargeFactor, "smartphones charged", "charging ~%s smartphones"},
	{EquivalencyTreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years", "~%s tree seedlings grown for 10 years"},
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one CO2e mass.
type EquivalencyOutput struct {
	InputKg     float64             `json:"input_kg"`
	Results     []EquivalencyResult `json:"results"`
	DisplayText string              `json:"display_text"`
	IsEmpty     bool                `json:"is_empty"`
}

// Equivalencies expresses kgCO2e as relatable quantities.
//
// Masses below MinEquivalencyThresholdKg return an empty output: the comparisons
// become meaninglessly small.
func Equivalencies(kgCO2e float64) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(kgCO2e, "kg")
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(equivalencyFactors))
	phrases := make([]string, 0, len(equivalencyFactors))
	for _, ef := range equivalencyFactors {
		v := kg / ef.factor
		formatted := formatEquivalencyValue(v)
		results = append(results, EquivalencyResult{
			Type:           ef.kind,
			Value:          v,
			FormattedValue: formatted,
			Label:          ef.label,
		})
		phrases = append(phrases, fmt.Sprintf(ef.phrase, formatted))
	}

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: "Equivalent to " + strings.Join(phrases, ", or "),
	}, nil
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatFloat(v, 0)
}
