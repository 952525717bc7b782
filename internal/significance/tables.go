package significance

import (
	"fmt"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
)

const tablesName = "significance"

// Breakpoints split total scores into categories.
// total < ModerateMin is negligible; total > CriticalAbove is critical.
type Breakpoints struct {
	ModerateMin   int `json:"moderate_min"   yaml:"moderate_min"`
	CriticalAbove int `json:"critical_above" yaml:"critical_above"`
}

// ScoringTables are the lookup tables the classifier scores against.
type ScoringTables struct {
	// Version identifies the tables in assessment records.
	Version     string                  `json:"version"     yaml:"version"`
	Consequence map[Scope]map[Level]int `json:"consequence" yaml:"consequence"`
	Likelihood  map[Level]int           `json:"likelihood"  yaml:"likelihood"`
	Breakpoints Breakpoints             `json:"breakpoints" yaml:"breakpoints"`
}

// DefaultTablesVersion is the version of DefaultScoringTables.
const DefaultTablesVersion = "1.0.0"

// DefaultScoringTables returns the standard LAIA tables.
func DefaultScoringTables() ScoringTables {
	return ScoringTables{
		Version: DefaultTablesVersion,
		Consequence: map[Scope]map[Level]int{
			ScopeLocal:    {LevelLow: 20, LevelMedium: 40, LevelHigh: 60},
			ScopeRegional: {LevelLow: 25, LevelMedium: 45, LevelHigh: 65},
			ScopeGlobal:   {LevelLow: 30, LevelMedium: 50, LevelHigh: 70},
		},
		Likelihood: map[Level]int{
			LevelLow:    10,
			LevelMedium: 20,
			LevelHigh:   30,
		},
		Breakpoints: Breakpoints{ModerateMin: 50, CriticalAbove: 70},
	}
}

// Validate checks that every scope/severity cell and every likelihood level has a
// score, and that scores strictly increase along each axis.
func (t ScoringTables) Validate() error {
	scopes, levels := Scopes(), Levels()

	for _, s := range scopes {
		row, ok := t.Consequence[s]
		if !ok {
			return calcerr.Misconfigured(tablesName, "consequence."+string(s), "missing scope row")
		}
		for _, l := range levels {
			if _, ok := row[l]; !ok {
				return calcerr.Misconfigured(tablesName, consequenceKey(s, l), "missing consequence score")
			}
		}
	}
	for _, l := range levels {
		if _, ok := t.Likelihood[l]; !ok {
			return calcerr.Misconfigured(tablesName, "likelihood."+string(l), "missing likelihood score")
		}
	}

	for _, s := range scopes {
		for i := 1; i < len(levels); i++ {
			lo, hi := t.Consequence[s][levels[i-1]], t.Consequence[s][levels[i]]
			if hi <= lo {
				return calcerr.Misconfigured(tablesName, consequenceKey(s, levels[i]),
					fmt.Sprintf("must exceed %s (%d), got %d", consequenceKey(s, levels[i-1]), lo, hi))
			}
		}
	}
	for _, l := range levels {
		for i := 1; i < len(scopes); i++ {
			lo, hi := t.Consequence[scopes[i-1]][l], t.Consequence[scopes[i]][l]
			if hi <= lo {
				return calcerr.Misconfigured(tablesName, consequenceKey(scopes[i], l),
					fmt.Sprintf("must exceed %s (%d), got %d", consequenceKey(scopes[i-1], l), lo, hi))
			}
		}
	}
	for i := 1; i < len(levels); i++ {
		lo, hi := t.Likelihood[levels[i-1]], t.Likelihood[levels[i]]
		if hi <= lo {
			return calcerr.Misconfigured(tablesName, "likelihood."+string(levels[i]),
				fmt.Sprintf("must exceed likelihood.%s (%d), got %d", levels[i-1], lo, hi))
		}
	}

	if t.Breakpoints.ModerateMin > t.Breakpoints.CriticalAbove {
		return calcerr.Misconfigured(tablesName, "breakpoints",
			fmt.Sprintf("moderate_min (%d) must not exceed critical_above (%d)",
				t.Breakpoints.ModerateMin, t.Breakpoints.CriticalAbove))
	}
	return nil
}

// Category maps a total score to its tier. Both moderate bounds are inclusive.
func (b Breakpoints) Category(total int) Category {
	switch {
	case total < b.ModerateMin:
		return CategoryNegligible
	case total > b.CriticalAbove:
		return CategoryCritical
	default:
		return CategoryModerate
	}
}

func consequenceKey(s Scope, l Level) string {
	return fmt.Sprintf("consequence.%s.%s", s, l)
}
