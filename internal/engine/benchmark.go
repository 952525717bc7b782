package engine

// Metric returns the number a benchmark baseline is compared against, and
// whether lower values are better for it:
//
//   - significance: total score, lower is better
//   - frequency_rate: rate per standard block, lower is better
//   - co2e: emissions in kg when a quantity was given, otherwise CO2e per unit; lower is better
//   - compare: the current value, using the request's own direction
//
// ok is false for an empty response.
func (r Response) Metric() (value float64, lowerIsBetter, ok bool) {
	switch {
	case r.Significance != nil:
		return float64(r.Significance.TotalScore), true, true
	case r.FrequencyRate != nil:
		return r.FrequencyRate.Rate, true, true
	case r.CO2e != nil:
		if r.CO2e.EmissionsKg != nil {
			return *r.CO2e.EmissionsKg, true, true
		}
		return r.CO2e.TotalCO2e, true, true
	case r.Compare != nil:
		return r.Compare.Current, r.Compare.LowerIsBetter, true
	default:
		return 0, false, false
	}
}
