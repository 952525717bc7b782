// Package greenops provides greenhouse-gas calculations for emission factor profiles.
//
// It converts per-gas emission factors (CO2, CH4, N2O) into a single CO2-equivalent
// figure using a versioned GWP-100 reference table, honours direct-GWP overrides
// for substances reported straight in CO2e per unit mass (HFC refrigerants), and
// aggregates activity data into an emissions inventory.
package greenops

import (
	"fmt"
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// Gas identifies a greenhouse gas in a GWP table.
type Gas string

// Gases decomposed by the standard methodology, plus common refrigerants.
const (
	GasCO2     Gas = "CO2"
	GasCH4     Gas = "CH4"
	GasN2O     Gas = "N2O"
	GasHFC134a Gas = "HFC-134a"
	GasHFC32   Gas = "HFC-32"
	GasR410A   Gas = "R-410A"
	GasSF6     Gas = "SF6"
)

// standardGases is the fixed decomposition order for the standard methodology.
//
//nolint:gochecknoglobals // Constant lookup table.
var standardGases = []Gas{GasCO2, GasCH4, GasN2O}

// Methodology records how a CO2e total was derived.
type Methodology string

const (
	// MethodologyDirectGWP means the factor set carried a direct CO2e-per-unit value.
	MethodologyDirectGWP Methodology = "direct_gwp"
	// MethodologyStandardGWP means the total was summed from per-gas factors times GWP.
	MethodologyStandardGWP Methodology = "standard_gwp"
)

// EmissionScope is the GHG Protocol scope of an activity.
type EmissionScope int

// GHG Protocol scopes.
const (
	Scope1 EmissionScope = 1 // direct emissions
	Scope2 EmissionScope = 2 // purchased energy
	Scope3 EmissionScope = 3 // value chain
)

// String returns "scope_N".
func (s EmissionScope) String() string {
	return fmt.Sprintf("scope_%d", int(s))
}

// Valid reports whether s is one of the three GHG Protocol scopes.
func (s EmissionScope) Valid() bool {
	return s >= Scope1 && s <= Scope3
}

// GasFactorSet is the emission-factor profile of one activity, fuel or process.
//
// When DirectGWP is set the per-gas factors are ignored for equivalence purposes;
// they may still be displayed individually.
type GasFactorSet struct {
	CO2Factor       float64  `json:"co2_factor"        yaml:"co2"`
	CH4Factor       float64  `json:"ch4_factor"        yaml:"ch4"`
	N2OFactor       float64  `json:"n2o_factor"        yaml:"n2o"`
	DirectGWP       *float64 `json:"direct_gwp"        yaml:"direct_gwp,omitempty"`
	DirectGWPSource *string  `json:"direct_gwp_source" yaml:"direct_gwp_source,omitempty"`
}

// HasDirectGWP reports whether the direct-GWP path applies.
func (f GasFactorSet) HasDirectGWP() bool {
	return f.DirectGWP != nil
}

// HasPerGasFactors reports whether any per-gas factor is populated.
func (f GasFactorSet) HasPerGasFactors() bool {
	return f.CO2Factor != 0 || f.CH4Factor != 0 || f.N2OFactor != 0
}

// factor returns the per-gas factor for one of the standard gases.
func (f GasFactorSet) factor(gas Gas) float64 {
	switch gas {
	case GasCO2:
		return f.CO2Factor
	case GasCH4:
		return f.CH4Factor
	case GasN2O:
		return f.N2OFactor
	default:
		return 0
	}
}

// Validate rejects negative or non-finite factors.
func (f GasFactorSet) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"co2_factor", f.CO2Factor},
		{"ch4_factor", f.CH4Factor},
		{"n2o_factor", f.N2OFactor},
	}
	if f.DirectGWP != nil {
		checks = append(checks, struct {
			field string
			value float64
		}{"direct_gwp", *f.DirectGWP})
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return calcerr.Invalidf(c.field, c.value, "must be a finite number")
		}
		if c.value < 0 {
			return calcerr.Invalidf(c.field, c.value, "must be >= 0")
		}
	}
	return nil
}

// GasContribution is one line of a CO2e breakdown.
type GasContribution struct {
	// Gas is the gas name, or "direct_gwp" for the synthetic direct entry.
	Gas string `json:"gas"`
	// Label is a display label (the provenance label for direct entries).
	Label string `json:"label"`
	// Factor is the emission factor per activity unit.
	Factor float64 `json:"factor"`
	// GWP is the multiplier applied to Factor.
	GWP float64 `json:"gwp"`
	// ContributionCO2e is Factor * GWP.
	ContributionCO2e float64 `json:"contribution_co2e"`
}

// CO2EquivalenceResult is the output of ComputeCO2e.
//
// TotalCO2e equals the direct GWP value under MethodologyDirectGWP and the sum of
// ContributionCO2e (rounded to StandardPrecision decimals) otherwise.
type CO2EquivalenceResult struct {
	TotalCO2e        float64           `json:"total_co2e"`
	FormattedTotal   string            `json:"formatted_total"`
	PerGasBreakdown  []GasContribution `json:"per_gas_breakdown"`
	Methodology      Methodology       `json:"methodology"`
	MethodologyLabel string            `json:"methodology_label"`
	// GWPTable is the name@version of the table consulted; empty for direct GWP.
	GWPTable string `json:"gwp_table,omitempty"`
	// IgnoredPerGasFactors is true when direct GWP took precedence over populated factors.
	IgnoredPerGasFactors bool `json:"ignored_per_gas_factors"`
}

// Float64 returns a pointer to v. Handy for GasFactorSet.DirectGWP literals.
func Float64(v float64) *float64 { return &v }

// String returns a pointer to s. Handy for GasFactorSet.DirectGWPSource literals.
func String(s string) *string { return &s }
