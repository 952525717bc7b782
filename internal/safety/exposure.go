package safety

import (
	"math"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

// DefaultHoursPerWorker is the annual hours assumed per worker when hours were
// not measured.
const DefaultHoursPerWorker = 2000

// EstimateExposureFromHeadcount builds an input whose exposure is headcount times
// hoursPerWorker. A zero hoursPerWorker uses DefaultHoursPerWorker.
func EstimateExposureFromHeadcount(incidents, headcount int, hoursPerWorker float64) (ExposureMetricInput, error) {
	if headcount <= 0 {
		return ExposureMetricInput{}, calcerr.Invalidf("headcount", float64(headcount), "must be > 0")
	}
	if hoursPerWorker == 0 {
		hoursPerWorker = DefaultHoursPerWorker
	}
	if math.IsNaN(hoursPerWorker) || math.IsInf(hoursPerWorker, 0) || hoursPerWorker < 0 {
		return ExposureMetricInput{}, calcerr.Invalidf("hours_per_worker", hoursPerWorker, "must be a finite number > 0")
	}

	return ExposureMetricInput{
		IncidentCount:  incidents,
		ExposureUnits:  float64(headcount) * hoursPerWorker,
		ExposureSource: SourceEstimatedFromHeadcount,
	}, nil
}
