package safety

import (
	"fmt"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

const qualityTableName = "safety.quality"

// Grade is the data-quality verdict attached to an exposure source.
type Grade struct {
	Quality    DataQuality `json:"grade"      yaml:"grade"`
	Confidence int         `json:"confidence" yaml:"confidence"`
}

// QualityTable maps exposure sources to their grade.
// Treat it as immutable; use With to derive an extended table.
type QualityTable map[ExposureSource]Grade

// DefaultQualityTable returns the built-in grades.
func DefaultQualityTable() QualityTable {
	return QualityTable{
		SourceMeasured:               {Quality: QualityHigh, Confidence: 95},
		SourceEstimatedFromHeadcount: {Quality: QualityMedium, Confidence: 70},
		SourceEstimatedDefault:       {Quality: QualityLow, Confidence: 50},
	}
}

// With returns a copy of t with source graded as g.
func (t QualityTable) With(source ExposureSource, g Grade) QualityTable {
	out := make(QualityTable, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[source] = g
	return out
}

// Validate checks every grade and confidence in the table.
func (t QualityTable) Validate() error {
	for src, g := range t {
		if src == "" {
			return calcerr.Misconfigured(qualityTableName, "", "exposure source name is required")
		}
		if !g.Quality.Valid() {
			return calcerr.Misconfigured(qualityTableName, string(src),
				fmt.Sprintf("grade must be high, medium or low, got %q", g.Quality))
		}
		if g.Confidence < 0 || g.Confidence > 100 {
			return calcerr.Misconfigured(qualityTableName, string(src),
				fmt.Sprintf("confidence must be within 0-100, got %d", g.Confidence))
		}
	}
	return nil
}

// Lookup returns the grade for source.
//
// A built-in source missing from the table is a ConfigurationError. Any other
// unknown source is a ValidationError against the record being scored.
func (t QualityTable) Lookup(source ExposureSource) (Grade, error) {
	if g, ok := t[source]; ok {
		return g, nil
	}
	if isBuiltinSource(source) {
		return Grade{}, calcerr.Misconfigured(qualityTableName, string(source), "no grade for built-in exposure source")
	}
	return Grade{}, calcerr.Invalid("exposure_source", string(source), "unknown exposure source")
}

func isBuiltinSource(s ExposureSource) bool {
	switch s {
	case SourceMeasured, SourceEstimatedFromHeadcount, SourceEstimatedDefault:
		return true
	default:
		return false
	}
}
