package cli

import (
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// Recommendation is the follow-up guidance printed under a result.
// The calculators only classify; what to do about a classification is decided here.
type Recommendation struct {
	Title   string   `json:"title"`
	Actions []string `json:"actions"`
}

//nolint:gochecknoglobals // Constant lookup table.
var remediationChecklist = []string{
	"Investigate every lost-time incident in the period with a documented root-cause analysis",
	"Review and update the hazard identification and risk assessment for the affected activities",
	"Retrain the affected teams on safe work procedures and record attendance",
	"Open a corrective action plan with an owner and a deadline for each finding",
	"Report progress to leadership monthly until the rate is back under the critical threshold",
}

//nolint:gochecknoglobals // Constant lookup table.
var operationalControls = []string{
	"Establish operational controls (procedures, work instructions) for this aspect",
	"Set an objective and target with an owner and a review date",
	"Monitor and measure the aspect and keep the records for the management review",
	"Prepare an emergency response for abnormal conditions where applicable",
}

// Recommend returns the guidance for a response, or nil when there is none.
//
// A critical frequency rate gets a mandatory remediation checklist and an excellent
// one a benchmark message. A significant aspect gets operational-control actions
// and a moderate aspect that is not significant a monitoring note.
func Recommend(resp engine.Response) *Recommendation {
	switch {
	case resp.FrequencyRate != nil:
		return recommendRate(resp.FrequencyRate.Classification)
	case resp.Significance != nil:
		return recommendSignificance(*resp.Significance)
	default:
		return nil
	}
}

func recommendRate(c safety.Classification) *Recommendation {
	switch c {
	case safety.ClassCritical:
		return &Recommendation{
			Title:   "Mandatory remediation checklist",
			Actions: remediationChecklist,
		}
	case safety.ClassExcellent:
		return &Recommendation{
			Title: "Benchmark performance",
			Actions: []string{
				"Rate is below the excellence threshold; document the practices behind it and share them as an internal benchmark",
			},
		}
	default:
		return nil
	}
}

func recommendSignificance(r significance.AssessmentResult) *Recommendation {
	switch {
	case r.IsSignificant():
		return &Recommendation{
			Title:   "Significant aspect: operational controls required",
			Actions: operationalControls,
		}
	case r.Category == significance.CategoryModerate:
		return &Recommendation{
			Title: "Monitor",
			Actions: []string{
				"Keep the aspect under periodic monitoring and re-assess it when a legal requirement, stakeholder demand or strategic option appears",
			},
		}
	default:
		return nil
	}
}
