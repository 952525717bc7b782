package safety

import (
	"fmt"
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// DefaultStandardBlock is the exposure block rates are normalised to (per million hours).
const DefaultStandardBlock = 1_000_000

// Default rate thresholds.
const (
	DefaultGoodThreshold      = 1.0
	DefaultAttentionThreshold = 3.0
	DefaultCriticalThreshold  = 5.0
)

// Thresholds are the band boundaries for a rate.
//
//   - rate < Good: excellent
//   - Good <= rate < Attention: good
//   - Attention <= rate <= Critical: attention
//   - rate > Critical: critical
type Thresholds struct {
	Good      float64 `json:"good"      yaml:"good"`
	Attention float64 `json:"attention" yaml:"attention"`
	Critical  float64 `json:"critical"  yaml:"critical"`
}

// DefaultThresholds returns the LTIFR bands 1.0, 3.0 and 5.0.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Good:      DefaultGoodThreshold,
		Attention: DefaultAttentionThreshold,
		Critical:  DefaultCriticalThreshold,
	}
}

// Validate requires 0 < Good < Attention < Critical.
func (th Thresholds) Validate() error {
	if !(th.Good > 0 && th.Good < th.Attention && th.Attention < th.Critical) {
		return calcerr.Misconfigured("safety.thresholds", "",
			fmt.Sprintf("thresholds must satisfy 0 < good < attention < critical, got %g/%g/%g",
				th.Good, th.Attention, th.Critical))
	}
	return nil
}

// Classify bands rate. The upper bound of the attention band is inclusive.
func (th Thresholds) Classify(rate float64) Classification {
	switch {
	case rate < th.Good:
		return ClassExcellent
	case rate < th.Attention:
		return ClassGood
	case rate <= th.Critical:
		return ClassAttention
	default:
		return ClassCritical
	}
}

// Calculator computes frequency rates against injected tables.
// The zero value is not usable; build one with NewCalculator.
type Calculator struct {
	StandardBlock float64
	Quality       QualityTable
	Thresholds    Thresholds
}

// NewCalculator returns a Calculator with the default block, grades and bands.
func NewCalculator() Calculator {
	return Calculator{
		StandardBlock: DefaultStandardBlock,
		Quality:       DefaultQualityTable(),
		Thresholds:    DefaultThresholds(),
	}
}

// Validate checks the calculator's tables.
func (c Calculator) Validate() error {
	if err := validateBlock(c.StandardBlock); err != nil {
		return err
	}
	if err := c.Quality.Validate(); err != nil {
		return err
	}
	return c.Thresholds.Validate()
}

// Compute returns the rate, its band and its data-quality grade.
// Inputs are validated before anything is computed.
func (c Calculator) Compute(in ExposureMetricInput) (FrequencyRateResult, error) {
	if err := validateBlock(c.StandardBlock); err != nil {
		return FrequencyRateResult{}, err
	}
	rate, err := perBlock(float64(in.IncidentCount), "incident_count", in.ExposureUnits, c.StandardBlock)
	if err != nil {
		return FrequencyRateResult{}, err
	}
	grade, err := c.Quality.Lookup(in.ExposureSource)
	if err != nil {
		return FrequencyRateResult{}, err
	}

	return FrequencyRateResult{
		Rate:            rate,
		DataQuality:     grade.Quality,
		ConfidenceLevel: grade.Confidence,
		Classification:  c.Thresholds.Classify(rate),
		ExposureSource:  in.ExposureSource,
		StandardBlock:   c.StandardBlock,
	}, nil
}

// SeverityRate returns days lost per StandardBlock exposure units.
func (c Calculator) SeverityRate(daysLost, exposureUnits float64) (float64, error) {
	if err := validateBlock(c.StandardBlock); err != nil {
		return 0, err
	}
	return perBlock(daysLost, "days_lost", exposureUnits, c.StandardBlock)
}

// ComputeRate computes a frequency rate with the default grades and bands.
func ComputeRate(in ExposureMetricInput, standardBlock float64) (FrequencyRateResult, error) {
	c := NewCalculator()
	c.StandardBlock = standardBlock
	return c.Compute(in)
}

func perBlock(count float64, countField string, exposureUnits, block float64) (float64, error) {
	if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 {
		return 0, calcerr.Invalidf(countField, count, "must be a finite number >= 0")
	}
	if math.IsNaN(exposureUnits) || math.IsInf(exposureUnits, 0) || exposureUnits <= 0 {
		return 0, calcerr.Invalidf("exposure_units", exposureUnits, "must be a finite number > 0")
	}
	rate := count * block / exposureUnits
	if math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, calcerr.Invalidf("exposure_units", exposureUnits, "too small to produce a finite rate")
	}
	return rate, nil
}

func validateBlock(block float64) error {
	if math.IsNaN(block) || math.IsInf(block, 0) || block <= 0 {
		return calcerr.Invalidf("standard_block", block, "must be a finite number > 0")
	}
	return nil
}
