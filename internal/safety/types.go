// Package safety computes injury frequency rates (LTIFR and friends) and grades how
// far each rate can be trusted from the provenance of its exposure hours.
//
// The rate formula and the data-quality grading are independent: the grade is a
// pure function of the exposure source and never of the rate's magnitude.
package safety

// ExposureSource records where an exposure-hours figure came from.
type ExposureSource string

// Built-in exposure sources.
const (
	SourceMeasured               ExposureSource = "measured"
	SourceEstimatedFromHeadcount ExposureSource = "estimated_from_headcount"
	SourceEstimatedDefault       ExposureSource = "estimated_default"
)

// DataQuality grades the reliability of a computed rate.
type DataQuality string

// Data-quality grades.
const (
	QualityHigh   DataQuality = "high"
	QualityMedium DataQuality = "medium"
	QualityLow    DataQuality = "low"
)

// Valid reports whether q is a known grade.
func (q DataQuality) Valid() bool {
	switch q {
	case QualityHigh, QualityMedium, QualityLow:
		return true
	default:
		return false
	}
}

// Classification is the rate band.
type Classification string

// Rate bands, best to worst.
const (
	ClassExcellent Classification = "excellent"
	ClassGood      Classification = "good"
	ClassAttention Classification = "attention"
	ClassCritical  Classification = "critical"
)

// ExposureMetricInput is the raw input to a frequency-rate calculation.
type ExposureMetricInput struct {
	IncidentCount  int            `json:"incident_count"  yaml:"incident_count"`
	ExposureUnits  float64        `json:"exposure_units"  yaml:"exposure_units"`
	ExposureSource ExposureSource `json:"exposure_source" yaml:"exposure_source"`
}

// FrequencyRateResult is the output of a frequency-rate calculation.
type FrequencyRateResult struct {
	// Rate is incidents per StandardBlock exposure units.
	Rate            float64        `json:"rate"`
	DataQuality     DataQuality    `json:"data_quality"`
	ConfidenceLevel int            `json:"confidence_level"`
	Classification  Classification `json:"classification"`
	ExposureSource  ExposureSource `json:"exposure_source"`
	StandardBlock   float64        `json:"standard_block"`
}
