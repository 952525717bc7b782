package significance

import "github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"

// Classifier scores assessments against a fixed set of tables.
type Classifier struct {
	tables ScoringTables
}

// NewClassifier validates tables and returns a classifier bound to them.
func NewClassifier(tables ScoringTables) (*Classifier, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{tables: tables}, nil
}

// DefaultClassifier returns a classifier over DefaultScoringTables.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultScoringTables())
	if err != nil {
		panic(err)
	}
	return c
}

// Tables returns the tables the classifier scores against.
func (c *Classifier) Tables() ScoringTables {
	return c.tables
}

// Classify scores in and returns its category and verdict.
//
// Negligible aspects are never significant and critical aspects always are. A
// moderate aspect is significant only when a legal, stakeholder or strategic
// driver is flagged.
func (c *Classifier) Classify(in AssessmentInput) (AssessmentResult, error) {
	if err := in.Validate(); err != nil {
		return AssessmentResult{}, err
	}

	consequence, ok := c.tables.Consequence[in.Scope][in.Severity]
	if !ok {
		return AssessmentResult{}, calcerr.Misconfigured(tablesName, consequenceKey(in.Scope, in.Severity), "missing consequence score")
	}
	likelihood, ok := c.tables.Likelihood[in.FrequencyProbability]
	if !ok {
		return AssessmentResult{}, calcerr.Misconfigured(tablesName, "likelihood."+string(in.FrequencyProbability), "missing likelihood score")
	}

	total := consequence + likelihood
	category := c.tables.Breakpoints.Category(total)

	return AssessmentResult{
		ConsequenceScore:          consequence,
		FrequencyProbabilityScore: likelihood,
		TotalScore:                total,
		Category:                  category,
		Significance:              verdict(category, in.HasOverride()),
	}, nil
}

// Classify scores in against the default tables.
func Classify(in AssessmentInput) (AssessmentResult, error) {
	return DefaultClassifier().Classify(in)
}

//nolint:gochecknoglobals // Constant lookup table.
var verdictByCategory = map[Category][2]Verdict{
	// index 0: no override flag, index 1: at least one flag
	CategoryNegligible: {NotSignificant, NotSignificant},
	CategoryModerate:   {NotSignificant, Significant},
	CategoryCritical:   {Significant, Significant},
}

func verdict(c Category, override bool) Verdict {
	idx := 0
	if override {
		idx = 1
	}
	return verdictByCategory[c][idx]
}
