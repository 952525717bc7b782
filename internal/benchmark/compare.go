// Package benchmark compares a computed metric against a sector or historical baseline.
package benchmark

import (
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// UnchangedThreshold is the absolute percent change below which a metric is unchanged.
const UnchangedThreshold = 0.01

// Direction is the movement of a metric relative to its baseline.
type Direction string

// Directions.
const (
	Improving Direction = "improving"
	Worsening Direction = "worsening"
	Unchanged Direction = "unchanged"
)

// Comparison is the outcome of Compare.
type Comparison struct {
	Current  float64 `json:"current"`
	Baseline float64 `json:"baseline"`
	// Delta is Current - Baseline.
	Delta float64 `json:"delta"`
	// PercentChange is Delta relative to |Baseline|, in percent. Zero when Baseline is zero.
	PercentChange float64   `json:"percent_change"`
	Direction     Direction `json:"direction"`
	IsBetter      bool      `json:"is_better"`
	LowerIsBetter bool      `json:"lower_is_better"`
}

// Compare measures current against baseline.
//
// The caller states the polarity of the metric: lowerIsBetter for frequency rates
// and emissions intensities, false for metrics such as completion rates.
func Compare(current, baseline float64, lowerIsBetter bool) (Comparison, error) {
	if !finite(current) {
		return Comparison{}, calcerr.Invalidf("current", current, "must be a finite number")
	}
	if !finite(baseline) {
		return Comparison{}, calcerr.Invalidf("baseline", baseline, "must be a finite number")
	}

	const percent = 100.0
	delta := current - baseline
	var pct float64
	if baseline != 0 {
		pct = delta / math.Abs(baseline) * percent
	}

	direction := Unchanged
	moved := math.Abs(pct) >= UnchangedThreshold
	if baseline == 0 {
		moved = delta != 0
	}
	if moved {
		if (delta < 0) == lowerIsBetter {
			direction = Improving
		} else {
			direction = Worsening
		}
	}

	return Comparison{
		Current:       current,
		Baseline:      baseline,
		Delta:         delta,
		PercentChange: pct,
		Direction:     direction,
		IsBetter:      direction == Improving,
		LowerIsBetter: lowerIsBetter,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
