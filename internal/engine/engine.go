package engine

import (
	"fmt"
	"strings"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/benchmark"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/config"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/safety"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/significance"
)

// Engine evaluates calculator requests against a fixed set of lookup tables.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	gwp        *greenops.TableSet
	safety     safety.Calculator
	classifier *significance.Classifier
	factors    *greenops.Registry
}

// Tables are the lookup tables an Engine is built from. Nil fields use the built-in defaults.
type Tables struct {
	GWP     *greenops.TableSet
	Safety  *safety.Calculator
	Scoring *significance.ScoringTables
	Factors *greenops.Registry
}

// New builds an Engine from a validated configuration.
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		return NewDefault(), nil
	}

	gwp, err := cfg.GWP.TableSet()
	if err != nil {
		return nil, fmt.Errorf("building GWP tables: %w", err)
	}
	calc, err := cfg.Safety.Calculator()
	if err != nil {
		return nil, fmt.Errorf("building safety calculator: %w", err)
	}
	scoring, err := cfg.Significance.ScoringTables()
	if err != nil {
		return nil, fmt.Errorf("building significance tables: %w", err)
	}
	factors, err := cfg.FactorRegistry()
	if err != nil {
		return nil, fmt.Errorf("building factor registry: %w", err)
	}

	return NewWithTables(Tables{
		GWP:     gwp,
		Safety:  &calc,
		Scoring: &scoring,
		Factors: factors,
	})
}

// NewDefault returns an Engine using the built-in tables.
func NewDefault() *Engine {
	e, err := NewWithTables(Tables{})
	if err != nil {
		panic(fmt.Sprintf("built-in tables are invalid: %v", err))
	}
	return e
}

// NewWithTables builds an Engine from explicit tables.
func NewWithTables(t Tables) (*Engine, error) {
	e := &Engine{
		gwp:     t.GWP,
		factors: t.Factors,
	}
	if e.gwp == nil {
		e.gwp = greenops.DefaultTableSet()
	}
	if e.factors == nil {
		e.factors = greenops.DefaultRegistry()
	}

	if t.Safety != nil {
		if err := t.Safety.Validate(); err != nil {
			return nil, err
		}
		e.safety = *t.Safety
	} else {
		e.safety = safety.NewCalculator()
	}

	if t.Scoring != nil {
		c, err := significance.NewClassifier(*t.Scoring)
		if err != nil {
			return nil, err
		}
		e.classifier = c
	} else {
		e.classifier = significance.DefaultClassifier()
	}
	return e, nil
}

// GWPTables returns the engine's GWP table set.
func (e *Engine) GWPTables() *greenops.TableSet { return e.gwp }

// Factors returns the engine's emission factor registry.
func (e *Engine) Factors() *greenops.Registry { return e.factors }

// ScoringTables returns a copy of the significance scoring tables.
func (e *Engine) ScoringTables() significance.ScoringTables { return e.classifier.Tables() }

// SafetyCalculator returns the configured frequency-rate calculator.
func (e *Engine) SafetyCalculator() safety.Calculator { return e.safety }

// Classify scores an environmental aspect.
func (e *Engine) Classify(in significance.AssessmentInput) (significance.AssessmentResult, error) {
	return e.classifier.Classify(in)
}

// ComputeRate computes a frequency rate with the configured standard block and thresholds.
func (e *Engine) ComputeRate(in safety.ExposureMetricInput) (safety.FrequencyRateResult, error) {
	return e.safety.Compute(in)
}

// ComputeCo2e converts factors to CO2e using the named GWP table.
// tableName may be a table name, a semver constraint such as "^5", or empty for the default.
func (e *Engine) ComputeCo2e(factors greenops.GasFactorSet, tableName string) (greenops.CO2EquivalenceResult, error) {
	table, err := e.Table(tableName)
	if err != nil {
		return greenops.CO2EquivalenceResult{}, err
	}
	return greenops.ComputeCO2e(factors, table)
}

// Compare benchmarks current against baseline.
func (e *Engine) Compare(current, baseline float64, lowerIsBetter bool) (benchmark.Comparison, error) {
	return benchmark.Compare(current, baseline, lowerIsBetter)
}

// Table resolves a GWP table by name or semver constraint.
func (e *Engine) Table(nameOrConstraint string) (greenops.GWPTable, error) {
	if isConstraint(nameOrConstraint) {
		return e.gwp.Resolve(nameOrConstraint)
	}
	return e.gwp.Get(nameOrConstraint)
}

func isConstraint(s string) bool {
	return s != "" && strings.ContainsAny(s[:1], "^~<>=!0123456789")
}

// WithStandardBlock returns a copy of e whose frequency rates are expressed per block exposure units.
func (e *Engine) WithStandardBlock(block float64) (*Engine, error) {
	calc := e.safety
	calc.StandardBlock = block
	if err := calc.Validate(); err != nil {
		return nil, err
	}
	cp := *e
	cp.safety = calc
	return &cp, nil
}
