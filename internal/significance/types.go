// Package significance classifies environmental aspects (LAIA): a table-driven
// consequence and likelihood score, a three-tier category and a significance verdict.
package significance

import "github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"

// Scope is the geographic reach of an environmental impact.
type Scope string

// Impact scopes, narrowest first.
const (
	ScopeLocal    Scope = "local"
	ScopeRegional Scope = "regional"
	ScopeGlobal   Scope = "global"
)

// Level is a low/medium/high rating used for severity and frequency/probability.
type Level string

// Rating levels, lowest first.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Category is the tier a total score falls into.
type Category string

// Categories, least severe first.
const (
	CategoryNegligible Category = "negligible"
	CategoryModerate   Category = "moderate"
	CategoryCritical   Category = "critical"
)

// Verdict is the final significance outcome.
type Verdict string

// Verdicts.
const (
	Significant    Verdict = "significant"
	NotSignificant Verdict = "not_significant"
)

// Scopes returns every scope in ascending order.
func Scopes() []Scope { return []Scope{ScopeLocal, ScopeRegional, ScopeGlobal} }

// Levels returns every level in ascending order.
func Levels() []Level { return []Level{LevelLow, LevelMedium, LevelHigh} }

// AssessmentInput is one environmental aspect/impact evaluation.
type AssessmentInput struct {
	Scope                Scope `json:"scope"                  yaml:"scope"`
	Severity             Level `json:"severity"               yaml:"severity"`
	FrequencyProbability Level `json:"frequency_probability"  yaml:"frequency_probability"`
	HasLegalRequirement  bool  `json:"has_legal_requirement"  yaml:"has_legal_requirement"`
	HasStakeholderDemand bool  `json:"has_stakeholder_demand" yaml:"has_stakeholder_demand"`
	HasStrategicOption   bool  `json:"has_strategic_option"   yaml:"has_strategic_option"`
}

// Validate rejects any enum value outside its three listed values.
func (in AssessmentInput) Validate() error {
	if !validScope(in.Scope) {
		return calcerr.Invalid("scope", string(in.Scope), "must be local, regional or global")
	}
	if !validLevel(in.Severity) {
		return calcerr.Invalid("severity", string(in.Severity), "must be low, medium or high")
	}
	if !validLevel(in.FrequencyProbability) {
		return calcerr.Invalid("frequency_probability", string(in.FrequencyProbability), "must be low, medium or high")
	}
	return nil
}

// HasOverride reports whether any of the three escalation flags is set.
func (in AssessmentInput) HasOverride() bool {
	return in.HasLegalRequirement || in.HasStakeholderDemand || in.HasStrategicOption
}

// AssessmentResult is the outcome of Classify.
// TotalScore is always ConsequenceScore + FrequencyProbabilityScore.
type AssessmentResult struct {
	ConsequenceScore          int      `json:"consequence_score"`
	FrequencyProbabilityScore int      `json:"frequency_probability_score"`
	TotalScore                int      `json:"total_score"`
	Category                  Category `json:"category"`
	Significance              Verdict  `json:"significance"`
}

// IsSignificant reports whether the verdict is significant.
func (r AssessmentResult) IsSignificant() bool {
	return r.Significance == Significant
}

func validScope(s Scope) bool {
	switch s {
	case ScopeLocal, ScopeRegional, ScopeGlobal:
		return true
	default:
		return false
	}
}

func validLevel(l Level) bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	default:
		return false
	}
}
