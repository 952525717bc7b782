package greenops

// Numeric precision policy for CO2e totals.
const (
	// StandardPrecision is the number of decimals kept for standard-GWP totals.
	// Per-gas factors are typically sub-unit per activity unit.
	StandardPrecision = 6

	// DirectPrecision is the number of decimals shown for direct-GWP totals.
	// Direct values are whole kg CO2e per kg of substance.
	DirectPrecision = 0
)

// Default GWP horizon in years.
const DefaultHorizonYears = 100

// Built-in GWP table names.
const (
	TableAR4 = "ar4"
	TableAR5 = "ar5"
	TableAR6 = "ar6"

	// DefaultTableName is the table used when callers do not name one.
	DefaultTableName = TableAR6
)

// directEntryGas is the gas name of the synthetic breakdown line on the direct path.
const directEntryGas = "direct_gwp"

// unspecifiedSource labels a direct GWP value without provenance.
const unspecifiedSource = "unspecified source"

// Unit conversion constants for normalizing CO2e quantities to kilograms.
const (
	// GramsToKg converts grams to kilograms.
	GramsToKg = 0.001

	// KgToKg is the identity conversion for kilograms.
	KgToKg = 1.0

	// TonsToKg converts metric tons to kilograms.
	TonsToKg = 1000.0

	// PoundsToKg converts pounds to kilograms.
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "~X.X million" notation.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" notation.
	BillionThreshold = 1_000_000_000
)

// EPA GHG equivalency divisors (2024 edition), converted to metric units where needed.
// equivalency = kg_CO2e / factor
const (
	// KmDrivenFactor is kg CO2e per km for an average passenger vehicle (0.192 kg/mile).
	KmDrivenFactor = 0.1193

	// SmartphoneChargeFactor is kg CO2e per smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed per urban tree seedling grown for 10 years.
	TreeSeedlingFactor = 60.0
)
