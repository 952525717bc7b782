package greenops

import (
	"fmt"
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// ComputeCO2e converts a GasFactorSet into a single CO2-equivalent figure.
//
// When factors.DirectGWP is set the direct value is returned as-is and the GWP
// table is not consulted; any populated per-gas factors are ignored, never summed
// or averaged with it. Otherwise each of CO2, CH4 and N2O contributes
// factor * GWP and the total is rounded to StandardPrecision decimals.
//
// Negative or non-finite factors fail with a ValidationError. A standard gas
// missing from table fails with a ConfigurationError.
func ComputeCO2e(factors GasFactorSet, table GWPTable) (CO2EquivalenceResult, error) {
	if err := factors.Validate(); err != nil {
		return CO2EquivalenceResult{}, err
	}

	if factors.HasDirectGWP() {
		return computeDirect(factors), nil
	}
	return computeStandard(factors, table)
}

func computeDirect(factors GasFactorSet) CO2EquivalenceResult {
	value := *factors.DirectGWP
	source := unspecifiedSource
	if factors.DirectGWPSource != nil && *factors.DirectGWPSource != "" {
		source = *factors.DirectGWPSource
	}

	return CO2EquivalenceResult{
		TotalCO2e:      value,
		FormattedTotal: FormatCO2e(value, MethodologyDirectGWP),
		PerGasBreakdown: []GasContribution{{
			Gas:              directEntryGas,
			Label:            source,
			Factor:           value,
			GWP:              1,
			ContributionCO2e: value,
		}},
		Methodology:          MethodologyDirectGWP,
		MethodologyLabel:     fmt.Sprintf("Direct GWP (%s)", source),
		IgnoredPerGasFactors: factors.HasPerGasFactors(),
	}
}

func computeStandard(factors GasFactorSet, table GWPTable) (CO2EquivalenceResult, error) {
	breakdown := make([]GasContribution, 0, len(standardGases))
	var total float64

	for _, gas := range standardGases {
		gwp, err := table.Lookup(gas)
		if err != nil {
			return CO2EquivalenceResult{}, err
		}
		factor := factors.factor(gas)
		contribution := factor * gwp
		breakdown = append(breakdown, GasContribution{
			Gas:              string(gas),
			Label:            string(gas),
			Factor:           factor,
			GWP:              gwp,
			ContributionCO2e: contribution,
		})
		total += contribution
	}

	total = RoundTo(total, StandardPrecision)
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return CO2EquivalenceResult{}, calcerr.Invalid("factors", "", "CO2e total overflows")
	}

	return CO2EquivalenceResult{
		TotalCO2e:        total,
		FormattedTotal:   FormatCO2e(total, MethodologyStandardGWP),
		PerGasBreakdown:  breakdown,
		Methodology:      MethodologyStandardGWP,
		MethodologyLabel: table.Label(),
		GWPTable:         table.ID(),
	}, nil
}

// RoundTo rounds v half away from zero to the given number of decimals.
// A value too large to scale has no fractional digits left and is returned as-is.
func RoundTo(v float64, decimals int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(decimals))
	scaled := v * multiplier
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return math.Round(scaled) / multiplier
}
